// Package bdfatlas packs the bitmap glyphs of a pixel font into a single 8-bit
// texture and records where each glyph landed. It is useful when a renderer
// wants to sample fixed glyph regions from one image instead of reading font
// files at runtime. Glyphs are copied exactly as given, one bit per pixel, so
// every atlas pixel is either fully off (0) or fully on (255).
//
// See the included atlasgen tool to convert a BDF font into an atlas and its
// lookup table.
package bdfatlas

import (
	"image"
	"image/color"
)

// Rect is the placement of one glyph's pixel block inside an atlas.
type Rect struct {
	X, Y, W, H int
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// In reports whether r lies fully inside a w x h buffer.
func (r Rect) In(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= w && r.Y+r.H <= h
}

// Placement ties a packed glyph to its rectangle.
type Placement struct {
	Name      string
	CodePoint int
	Rect
}

// Atlas is the result of packing. Pix holds Width*Height intensities in
// row-major order, and Placements lists every packed glyph in input order.
type Atlas struct {
	Width, Height int
	Pix           []uint8
	Placements    []Placement
}

func newAtlas(w, h int) *Atlas {
	return &Atlas{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h),
	}
}

// PixelAt returns the intensity at x,y, or 0 outside the atlas.
func (a *Atlas) PixelAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return 0
	}
	return a.Pix[y*a.Width+x]
}

// Lookup returns the placement of the first glyph with the given name.
func (a *Atlas) Lookup(name string) (Placement, bool) {
	for _, p := range a.Placements {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// LookupCode returns the placement of the first glyph with code point cp.
func (a *Atlas) LookupCode(cp int) (Placement, bool) {
	for _, p := range a.Placements {
		if p.CodePoint == cp {
			return p, true
		}
	}
	return Placement{}, false
}

// ColorModel, Bounds and At implement image.Image so an atlas can be handed
// directly to image encoders.
func (a *Atlas) ColorModel() color.Model { return color.GrayModel }

func (a *Atlas) Bounds() image.Rectangle { return image.Rect(0, 0, a.Width, a.Height) }

func (a *Atlas) At(x, y int) color.Color {
	return color.Gray{Y: a.PixelAt(x, y)}
}

///////

// Drawable is an interface which supports setting an x,y coordinate to a color.
type Drawable interface {
	Set(x, y int, c color.Color)
}

// DrawRect copies the lit pixels of r onto dr, with r's top-left corner at x,y.
func (a *Atlas) DrawRect(dr Drawable, x, y int, r Rect, clr color.Color) {
	for yy := 0; yy < r.H; yy++ {
		for xx := 0; xx < r.W; xx++ {
			if a.PixelAt(r.X+xx, r.Y+yy) != 0 {
				dr.Set(x+xx, y+yy, clr)
			}
		}
	}
}

// StringDrawable implements Drawable so glyphs can be previewed as text, for
// instance in the comments of generated tables.
type StringDrawable struct {
	lines [][]byte
}

func (s *StringDrawable) Set(x, y int, c color.Color) {
	for len(s.lines) <= y {
		s.lines = append(s.lines, nil)
	}

	if len(s.lines[y]) <= x {
		nb := make([]byte, 1+(x-len(s.lines[y])))
		s.lines[y] = append(s.lines[y], nb...)
	}

	s.lines[y][x] = byte('X')
}

// String returns the current string representation of this Drawable.
func (s *StringDrawable) String() string {
	return s.PrefixString("")
}

// PrefixString returns the current string representation of this Drawable with a
// user-provided prefix before each line. Useful for adding output in code comments.
func (s *StringDrawable) PrefixString(p string) string {
	r := ""
	for _, line := range s.lines {
		out := make([]byte, len(line))
		for i, b := range line {
			if b == 0 {
				b = ' '
			}
			out[i] = b
		}
		r += p + string(out) + "\n"
	}
	return r
}
