// Package glyphfilter selects which glyphs of a font go into an atlas.
package glyphfilter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbnjay/bdfatlas"
)

// Range is an inclusive code point range.
type Range struct {
	Min, Max int
	Name     string
}

// Contains reports whether cp lies in r.
func (r Range) Contains(cp int) bool {
	return cp >= r.Min && cp <= r.Max
}

func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%#x", r.Min)
	}
	return fmt.Sprintf("%#x-%#x", r.Min, r.Max)
}

// ParseRange reads "min-max" or a single code point. Numbers may be decimal
// or carry a 0x prefix.
func ParseRange(s string) (Range, error) {
	lo, hi := s, s
	if i := strings.Index(s, "-"); i > 0 {
		lo, hi = s[:i], s[i+1:]
	}
	min, err := strconv.ParseInt(strings.TrimSpace(lo), 0, 32)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %v", s, err)
	}
	max, err := strconv.ParseInt(strings.TrimSpace(hi), 0, 32)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %v", s, err)
	}
	if min < 0 || max < min {
		return Range{}, fmt.Errorf("range %q is empty", s)
	}
	return Range{Min: int(min), Max: int(max)}, nil
}

// DefaultRanges is the production selection: Latin text plus the symbol
// blocks useful for math and UI icons.
func DefaultRanges() []Range {
	return []Range{
		{32, 256, "Latin"},
		{0x2200, 0x22FF, "Mathematical Operators"},
		{0x2A00, 0x2AFF, "Supplemental Mathematical Operators"},
		{0x1D400, 0x1D7FF, "Mathematical Alphanumeric Symbols"},
		{0x2100, 0x214F, "Letterlike Symbols"},
		{0x27C0, 0x27EF, "Miscellaneous Mathematical Symbols-A"},
		{0x2980, 0x29FF, "Miscellaneous Mathematical Symbols-B"},
		{0x2300, 0x23FF, "Miscellaneous Technical"},
		{0x25A0, 0x25FF, "Geometric Shapes"},
		{0x2B00, 0x2BFF, "Miscellaneous Symbols and Arrows"},
		{0x2190, 0x21FF, "Arrows"},
		{0x27F0, 0x27FF, "Supplemental Arrows-A"},
		{0x2900, 0x297F, "Supplemental Arrows-B"},
		{0x20D0, 0x20DC, "Combining Diacritical Marks for Symbols"},
		{0x20E1, 0x20E1, "Combining Left Right Arrow Above"},
		{0x20E5, 0x20E5, "Combining Reverse Solidus Overlay"},
		{0x20EB, 0x20EB, "Combining Long Double Solidus Overlay"},
	}
}

// FillerName names the synthetic all-white glyph.
const FillerName = "ALLWHITE"

// Config selects glyphs by code point.
type Config struct {
	Ranges []Range

	// Filler appends a solid FillerWidth x FillerHeight glyph after the
	// selected ones.
	Filler       bool
	FillerWidth  int // multiple of 8
	FillerHeight int
}

// Filler returns a glyph with every pixel set. w must be a positive multiple
// of 8 so that no padding bits are drawn.
func Filler(w, h int) (bdfatlas.Glyph, error) {
	if w <= 0 || w%8 != 0 {
		return bdfatlas.Glyph{}, fmt.Errorf("filler width %d is not a positive multiple of 8", w)
	}
	rows := make([][]byte, h)
	for y := range rows {
		row := make([]byte, w/8)
		for i := range row {
			row[i] = 0xFF
		}
		rows[y] = row
	}
	return bdfatlas.NewGlyph(FillerName, bdfatlas.FillerCodePoint, w, h, 0, 0, rows)
}

// Match reports whether cp lies in any configured range.
func (c Config) Match(cp int) bool {
	for _, r := range c.Ranges {
		if r.Contains(cp) {
			return true
		}
	}
	return false
}

// Filter returns the glyphs whose code point matches, in input order,
// followed by the filler glyph when enabled. glyphs is not modified.
func Filter(c Config, glyphs []bdfatlas.Glyph) ([]bdfatlas.Glyph, error) {
	out := make([]bdfatlas.Glyph, 0, len(glyphs)+1)
	for _, g := range glyphs {
		if c.Match(g.CodePoint) {
			out = append(out, g)
		}
	}
	if c.Filler {
		f, err := Filler(c.FillerWidth, c.FillerHeight)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
