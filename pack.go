package bdfatlas

import (
	"errors"
	"fmt"
)

var (
	// ErrHeightMismatch is returned when glyphs do not share the row height.
	ErrHeightMismatch = errors.New("glyph height mismatch")
	// ErrWidthMismatch is returned in AutoHeight mode when footprints differ.
	ErrWidthMismatch = errors.New("glyph width mismatch")
	// ErrCapacityExceeded is returned when a glyph does not fit the atlas.
	ErrCapacityExceeded = errors.New("atlas capacity exceeded")
)

// PackError identifies the glyph that stopped a Pack call.
type PackError struct {
	Glyph string
	Index int // position in the input slice
	Err   error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("glyph %d (%s): %v", e.Index, e.Glyph, e.Err)
}

func (e *PackError) Unwrap() error { return e.Err }

// Mode selects how the atlas dimensions are chosen.
type Mode int

const (
	// FixedSize packs into exactly Options.Width x Options.Height.
	FixedSize Mode = iota
	// AutoHeight fixes the width and grows the height to fit every glyph.
	// All glyphs must share one footprint.
	AutoHeight
)

func (m Mode) String() string {
	switch m {
	case FixedSize:
		return "fixed"
	case AutoHeight:
		return "auto"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Options configures Pack.
type Options struct {
	Mode      Mode
	Width     int
	Height    int // ignored in AutoHeight mode
	RowHeight int // 0 uses the height of the first glyph
}

// Pack lays out glyphs left to right in rows of RowHeight pixels, starting a
// new row whenever the next glyph would cross the right edge, and rasterizes
// each one into the atlas. Glyphs are placed in input order so the output is
// fully determined by the input.
//
// Any glyph that cannot be placed aborts the whole call; no partial atlas is
// returned.
func Pack(glyphs []Glyph, opts Options) (*Atlas, error) {
	if opts.Width < 0 || opts.Height < 0 || opts.RowHeight < 0 {
		return nil, fmt.Errorf("%w: negative atlas size %dx%d row %d",
			ErrCapacityExceeded, opts.Width, opts.Height, opts.RowHeight)
	}

	rowHeight := opts.RowHeight
	if rowHeight == 0 && len(glyphs) > 0 {
		rowHeight = glyphs[0].Height
	}
	for i, g := range glyphs {
		if err := g.validate(); err != nil {
			return nil, &PackError{g.Name, i, err}
		}
		if g.Height != rowHeight || len(g.Rows) != rowHeight {
			return nil, &PackError{g.Name, i, fmt.Errorf("%w: height %d, row height %d",
				ErrHeightMismatch, g.Height, rowHeight)}
		}
	}

	width, height := opts.Width, opts.Height
	switch opts.Mode {
	case FixedSize:
	case AutoHeight:
		h, err := autoHeight(glyphs, width, rowHeight)
		if err != nil {
			return nil, err
		}
		height = h
	default:
		return nil, fmt.Errorf("unknown pack mode %v", opts.Mode)
	}

	atlas := newAtlas(width, height)
	atlas.Placements = make([]Placement, 0, len(glyphs))

	x, y := 0, 0
	for i, g := range glyphs {
		fw := g.Footprint()
		if x+fw > width {
			x = 0
			y += rowHeight
		}
		if fw > width || y+rowHeight > height {
			return nil, &PackError{g.Name, i, fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d",
				ErrCapacityExceeded, fw, rowHeight, x, y, width, height)}
		}

		r := Rect{X: x, Y: y, W: fw, H: rowHeight}
		atlas.Placements = append(atlas.Placements, Placement{
			Name:      g.Name,
			CodePoint: g.CodePoint,
			Rect:      r,
		})
		atlas.rasterize(g, r)

		x += fw
	}
	return atlas, nil
}

// autoHeight returns the smallest height holding every glyph when each row
// fits width/footprint glyphs.
func autoHeight(glyphs []Glyph, width, rowHeight int) (int, error) {
	if len(glyphs) == 0 {
		return 0, nil
	}
	fw := glyphs[0].Footprint()
	for i, g := range glyphs {
		if g.Footprint() != fw {
			return 0, &PackError{g.Name, i, fmt.Errorf("%w: footprint %d, want %d",
				ErrWidthMismatch, g.Footprint(), fw)}
		}
	}
	perRow := width / fw
	if perRow == 0 {
		return 0, &PackError{glyphs[0].Name, 0, fmt.Errorf("%w: footprint %d wider than atlas width %d",
			ErrCapacityExceeded, fw, width)}
	}
	rows := (len(glyphs) + perRow - 1) / perRow
	return rows * rowHeight, nil
}
