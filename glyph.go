package bdfatlas

import (
	"errors"
	"fmt"
)

// ErrInvalidGlyph is returned by NewGlyph when a record is inconsistent.
var ErrInvalidGlyph = errors.New("invalid glyph")

// FillerCodePoint marks synthetic glyphs that do not represent a character.
const FillerCodePoint = -1

// Glyph is a single bitmap glyph as declared by the source font. Rows holds
// Height scanlines of RowBytes() bytes each, with the leftmost pixel in the
// most significant bit of the first byte.
//
// Glyphs are built by NewGlyph and must be treated as read-only afterwards.
type Glyph struct {
	Name      string // "SPACE"
	CodePoint int    // 32, or FillerCodePoint
	Width     int    // declared pixels
	Height    int
	XOffset   int // unused by layout
	YOffset   int
	Rows      [][]byte
}

// NewGlyph validates the record and returns it. Rows are not copied.
func NewGlyph(name string, cp, w, h, xoff, yoff int, rows [][]byte) (Glyph, error) {
	g := Glyph{
		Name:      name,
		CodePoint: cp,
		Width:     w,
		Height:    h,
		XOffset:   xoff,
		YOffset:   yoff,
		Rows:      rows,
	}
	if err := g.validate(); err != nil {
		return Glyph{}, err
	}
	return g, nil
}

func (g Glyph) validate() error {
	switch {
	case g.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidGlyph)
	case g.CodePoint < FillerCodePoint:
		return fmt.Errorf("%w: %s has code point %d", ErrInvalidGlyph, g.Name, g.CodePoint)
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: %s has size %dx%d", ErrInvalidGlyph, g.Name, g.Width, g.Height)
	case len(g.Rows) != g.Height:
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrInvalidGlyph, g.Name, len(g.Rows), g.Height)
	}
	want := RowBytes(g.Width)
	for y, row := range g.Rows {
		if len(row) != want {
			return fmt.Errorf("%w: %s row %d has %d bytes, want %d", ErrInvalidGlyph, g.Name, y, len(row), want)
		}
	}
	return nil
}

// RowBytes is the number of bytes needed to hold w pixels, one bit each.
func RowBytes(w int) int {
	return (w + 7) / 8
}

// RowBytes returns the byte length of each scanline in g.
func (g Glyph) RowBytes() int {
	return RowBytes(g.Width)
}

// Footprint is the pixel width actually drawn into an atlas. It is always a
// multiple of 8 and may exceed the declared Width, in which case the padding
// bits of the last byte are drawn as well.
func (g Glyph) Footprint() int {
	return g.RowBytes() * 8
}

func (g Glyph) String() string {
	return fmt.Sprintf("%s (%d) %dx%d", g.Name, g.CodePoint, g.Width, g.Height)
}
