package bdfatlas

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// rasterize expands g's packed rows into r, one byte per pixel. Bit 7 of each
// source byte is the leftmost of its 8 pixels.
func (a *Atlas) rasterize(g Glyph, r Rect) {
	for dy := 0; dy < r.H; dy++ {
		row := g.Rows[dy]
		dst := a.Pix[(r.Y+dy)*a.Width+r.X:]
		for dx := 0; dx < r.W; dx++ {
			bit := row[dx/8] & (1 << uint(7-dx%8))
			if bit != 0 {
				dst[dx] = 255
			} else {
				dst[dx] = 0
			}
		}
	}
}

// EncodeRows packs the pixels of r back into one bit per pixel, most
// significant bit first, returning one byte slice per scanline. Any non-zero
// intensity is a set bit. It is the inverse of rasterization for glyphs whose
// width is a multiple of 8.
func (a *Atlas) EncodeRows(r Rect) ([][]byte, error) {
	if !r.In(a.Width, a.Height) {
		return nil, fmt.Errorf("rect %+v outside %dx%d atlas", r, a.Width, a.Height)
	}
	rows := make([][]byte, r.H)
	for y := 0; y < r.H; y++ {
		b := &bytes.Buffer{}
		w := bitio.NewWriter(b)
		for x := 0; x < r.W; x++ {
			var bit uint64
			if a.PixelAt(r.X+x, r.Y+y) != 0 {
				bit = 1
			}
			if err := w.WriteBits(bit, 1); err != nil {
				return nil, err
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		rows[y] = b.Bytes()
	}
	return rows, nil
}
