package bdfatlas

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

// solid returns a w x h glyph whose rows are all b.
func solid(t *testing.T, name string, cp, w, h int, b byte) Glyph {
	t.Helper()
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = bytes.Repeat([]byte{b}, RowBytes(w))
	}
	g, err := NewGlyph(name, cp, w, h, 0, 0, rows)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func glyphRun(t *testing.T, n, w, h int) []Glyph {
	glyphs := make([]Glyph, n)
	for i := range glyphs {
		glyphs[i] = solid(t, fmt.Sprintf("G%d", i), 32+i, w, h, byte(i))
	}
	return glyphs
}

func assertPackInvariants(t *testing.T, a *Atlas) {
	t.Helper()
	if len(a.Pix) != a.Width*a.Height {
		t.Fatalf("pixel buffer has %d bytes, want %d", len(a.Pix), a.Width*a.Height)
	}
	for i, p := range a.Placements {
		if !p.In(a.Width, a.Height) {
			t.Errorf("placement %s %+v outside %dx%d", p.Name, p.Rect, a.Width, a.Height)
		}
		for _, q := range a.Placements[i+1:] {
			if p.Intersects(q.Rect) {
				t.Errorf("placements %s %+v and %s %+v overlap", p.Name, p.Rect, q.Name, q.Rect)
			}
		}
	}
	for i, px := range a.Pix {
		if px != 0 && px != 255 {
			t.Fatalf("pixel %d has intensity %d", i, px)
		}
	}
}

func TestPackSingleGlyph(t *testing.T) {
	g := solid(t, "A", 65, 8, 16, 0xFF)
	a, err := Pack([]Glyph{g}, Options{Mode: FixedSize, Width: 128, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	assertPackInvariants(t, a)

	p, ok := a.Lookup("A")
	if !ok {
		t.Fatal("glyph A was not placed")
	}
	if want := (Rect{0, 0, 8, 16}); p.Rect != want {
		t.Errorf("expected %+v got %+v", want, p.Rect)
	}
	lit := 0
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			px := a.PixelAt(x, y)
			if x < 8 && px != 255 {
				t.Fatalf("pixel %d,%d inside glyph is %d", x, y, px)
			}
			if x >= 8 && px != 0 {
				t.Fatalf("pixel %d,%d outside glyph is %d", x, y, px)
			}
			if px == 255 {
				lit++
			}
		}
	}
	if lit != 128 {
		t.Errorf("expected 128 lit pixels, found %d", lit)
	}
}

type shelfTestCase struct {
	Mode          Mode
	Count         int
	GlyphWidth    int
	Width, Height int
	WantHeight    int
	WantLast      Rect
}

var shelfTestCases = []shelfTestCase{
	// 16 glyphs per row, the 17th opens a second row.
	{AutoHeight, 17, 8, 128, 0, 32, Rect{0, 16, 8, 16}},
	{AutoHeight, 16, 8, 128, 0, 16, Rect{120, 0, 8, 16}},
	{AutoHeight, 1, 8, 128, 0, 16, Rect{0, 0, 8, 16}},
	// a 12-wide glyph uses a 16 pixel footprint
	{AutoHeight, 9, 12, 128, 0, 32, Rect{0, 16, 16, 16}},
	{AutoHeight, 3, 8, 20, 0, 32, Rect{0, 16, 8, 16}},
	{FixedSize, 17, 8, 128, 32, 32, Rect{0, 16, 8, 16}},
	{FixedSize, 32, 8, 128, 32, 32, Rect{120, 16, 8, 16}},
	{FixedSize, 3, 16, 40, 48, 48, Rect{0, 16, 16, 16}},
}

func TestShelfPacking(t *testing.T) {
	for _, c := range shelfTestCases {
		t.Run(fmt.Sprintf("%v/%dx%d/%d", c.Mode, c.Width, c.Height, c.Count), func(t *testing.T) {
			glyphs := glyphRun(t, c.Count, c.GlyphWidth, 16)
			a, err := Pack(glyphs, Options{Mode: c.Mode, Width: c.Width, Height: c.Height})
			if err != nil {
				t.Fatal(err)
			}
			assertPackInvariants(t, a)
			if a.Height != c.WantHeight {
				t.Errorf("expected height %d got %d", c.WantHeight, a.Height)
			}
			if len(a.Placements) != c.Count {
				t.Fatalf("expected %d placements got %d", c.Count, len(a.Placements))
			}
			if last := a.Placements[c.Count-1].Rect; last != c.WantLast {
				t.Errorf("expected last placement %+v got %+v", c.WantLast, last)
			}
		})
	}
}

func TestWrapBoundary(t *testing.T) {
	// Two 8-pixel glyphs exactly fill a 16 pixel row, so the second one stays
	// on the first row and ends at the right edge.
	glyphs := glyphRun(t, 2, 8, 16)
	a, err := Pack(glyphs, Options{Mode: FixedSize, Width: 16, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{8, 0, 8, 16}); a.Placements[1].Rect != want {
		t.Errorf("expected %+v got %+v", want, a.Placements[1].Rect)
	}

	// One pixel narrower and the second glyph must wrap.
	_, err = Pack(glyphs, Options{Mode: FixedSize, Width: 15, Height: 16})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	a, err = Pack(glyphs, Options{Mode: FixedSize, Width: 15, Height: 32})
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{0, 16, 8, 16}); a.Placements[1].Rect != want {
		t.Errorf("expected %+v got %+v", want, a.Placements[1].Rect)
	}
}

func TestPackErrors(t *testing.T) {
	tall := solid(t, "TALL", 66, 8, 17, 0xFF)
	wide := solid(t, "WIDE", 67, 16, 16, 0xFF)
	a := solid(t, "A", 65, 8, 16, 0xFF)
	// built without NewGlyph, rows too short for the declared width
	short := Glyph{Name: "SHORT", CodePoint: 65, Width: 16, Height: 1, Rows: [][]byte{{0xFF}}}

	cases := []struct {
		Name   string
		Glyphs []Glyph
		Opts   Options
		Err    error
		Glyph  string
	}{
		{"mixed heights", []Glyph{a, tall}, Options{Width: 64, Height: 64}, ErrHeightMismatch, "TALL"},
		{"row height", []Glyph{a}, Options{Width: 64, Height: 64, RowHeight: 8}, ErrHeightMismatch, "A"},
		{"too wide", []Glyph{wide}, Options{Width: 8, Height: 64}, ErrCapacityExceeded, "WIDE"},
		{"too short", glyphRun(t, 3, 8, 16), Options{Width: 16, Height: 16}, ErrCapacityExceeded, "G2"},
		{"auto mixed widths", []Glyph{a, wide}, Options{Mode: AutoHeight, Width: 64}, ErrWidthMismatch, "WIDE"},
		{"auto too wide", []Glyph{wide}, Options{Mode: AutoHeight, Width: 8}, ErrCapacityExceeded, "WIDE"},
		{"short rows", []Glyph{short}, Options{Width: 64, Height: 1}, ErrInvalidGlyph, "SHORT"},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			atlas, err := Pack(c.Glyphs, c.Opts)
			if atlas != nil {
				t.Error("expected no atlas on failure")
			}
			if !errors.Is(err, c.Err) {
				t.Fatalf("expected %v got %v", c.Err, err)
			}
			var pe *PackError
			if !errors.As(err, &pe) {
				t.Fatalf("expected a *PackError, got %T", err)
			}
			if pe.Glyph != c.Glyph {
				t.Errorf("expected error for glyph %s got %s", c.Glyph, pe.Glyph)
			}
		})
	}
}

func TestPackEmpty(t *testing.T) {
	a, err := Pack(nil, Options{Mode: AutoHeight, Width: 128})
	if err != nil {
		t.Fatal(err)
	}
	if a.Height != 0 || len(a.Placements) != 0 {
		t.Errorf("expected empty atlas, got %dx%d with %d placements", a.Width, a.Height, len(a.Placements))
	}
}

func TestPackDeterministic(t *testing.T) {
	glyphs := glyphRun(t, 40, 8, 16)
	for _, mode := range []Mode{FixedSize, AutoHeight} {
		opts := Options{Mode: mode, Width: 64, Height: 80}
		a, err := Pack(glyphs, opts)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Pack(glyphs, opts)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("%v: pixel buffers differ between runs", mode)
		}
		for i := range a.Placements {
			if a.Placements[i] != b.Placements[i] {
				t.Errorf("%v: placement %d differs: %+v vs %+v", mode, i, a.Placements[i], b.Placements[i])
			}
		}
	}
}

func TestModesAgree(t *testing.T) {
	// 40 glyphs at 8 per row need exactly 5 rows, so both modes produce the
	// same 64x80 atlas.
	glyphs := glyphRun(t, 40, 8, 16)
	fixed, err := Pack(glyphs, Options{Mode: FixedSize, Width: 64, Height: 80})
	if err != nil {
		t.Fatal(err)
	}
	auto, err := Pack(glyphs, Options{Mode: AutoHeight, Width: 64})
	if err != nil {
		t.Fatal(err)
	}
	if auto.Height != 80 {
		t.Fatalf("expected auto height 80 got %d", auto.Height)
	}
	if !bytes.Equal(fixed.Pix, auto.Pix) {
		t.Error("fixed and auto pixel buffers differ")
	}
}

func TestPackDoesNotMutateInput(t *testing.T) {
	glyphs := glyphRun(t, 3, 8, 2)
	snapshot := func() string {
		s := ""
		for _, g := range glyphs {
			s += fmt.Sprintf("%s %v\n", g, g.Rows)
		}
		return s
	}
	before := snapshot()
	if _, err := Pack(glyphs, Options{Width: 8, Height: 6}); err != nil {
		t.Fatal(err)
	}
	if after := snapshot(); after != before {
		t.Errorf("input changed:\n%s\n%s", before, after)
	}
}
