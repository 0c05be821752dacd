// Package bdf reads glyph bitmaps from BDF font files.
//
// https://www.adobe.com/content/dam/acom/en/devnet/font/pdfs/5005.BDF_Spec.pdf
package bdf

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbnjay/bdfatlas"
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrRowLengthMismatch = errors.New("row length mismatch")
	ErrOddHexLength      = errors.New("odd hex length")
)

// Error locates a parse failure. Line is 0-based.
type Error struct {
	Line  int
	Glyph string
	Err   error
}

func (e *Error) Error() string {
	if e.Glyph == "" {
		return fmt.Sprintf("bdf: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("bdf: line %d: glyph %q: %v", e.Line, e.Glyph, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Header holds the font-level fields seen before the first glyph.
type Header struct {
	Version     string // "2.1"
	FontName    string
	BoundingBox [4]int // Width, Height, X offset, Y offset
	NumGlyphs   int
}

var headerParsers = map[string]func(*Header, string){
	"STARTFONT": func(h *Header, line string) {
		h.Version = line
	},
	"FONT": func(h *Header, line string) {
		h.FontName = line
	},
	"FONTBOUNDINGBOX": func(h *Header, line string) {
		fmt.Sscanf(line, "%d %d %d %d", &h.BoundingBox[0], &h.BoundingBox[1], &h.BoundingBox[2], &h.BoundingBox[3])
	},
	"CHARS": func(h *Header, line string) {
		fmt.Sscanf(line, "%d", &h.NumGlyphs)
	},
}

// maxLineSize bounds a single input line. Wide glyphs produce long rows.
const maxLineSize = 1 << 20

// Decoder reads glyphs one at a time from a BDF stream.
type Decoder struct {
	s      *bufio.Scanner
	line   int // index of the most recently read line
	header Header
	inChar bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{s: s, line: -1}
}

// Header returns the font header fields read so far.
func (d *Decoder) Header() Header {
	return d.header
}

func (d *Decoder) scan() (string, bool) {
	if !d.s.Scan() {
		return "", false
	}
	d.line++
	return strings.TrimSpace(d.s.Text()), true
}

// eof reports a premature end of input, preferring a read error if any.
func (d *Decoder) eof(glyph, what string) error {
	if err := d.s.Err(); err != nil {
		return &Error{d.line + 1, glyph, err}
	}
	return &Error{d.line + 1, glyph, fmt.Errorf("%w: %s", ErrMalformedRecord, what)}
}

func (d *Decoder) fail(glyph string, err error) error {
	return &Error{d.line, glyph, err}
}

// Next returns the next glyph in source order, or io.EOF once the input is
// exhausted. Any other error is final.
func (d *Decoder) Next() (bdfatlas.Glyph, error) {
	var name string
	for {
		line, ok := d.scan()
		if !ok {
			if err := d.s.Err(); err != nil {
				return bdfatlas.Glyph{}, &Error{d.line + 1, "", err}
			}
			return bdfatlas.Glyph{}, io.EOF
		}
		kw, rest := splitKeyword(line)
		if kw == "STARTCHAR" {
			name = rest
			if name == "" {
				return bdfatlas.Glyph{}, d.fail("", fmt.Errorf("%w: missing glyph name", ErrMalformedRecord))
			}
			break
		}
		if !d.inChar {
			if p, ok := headerParsers[kw]; ok {
				p(&d.header, rest)
			}
		}
	}
	d.inChar = true

	line, ok := d.scan()
	if !ok {
		return bdfatlas.Glyph{}, d.eof(name, "missing encoding")
	}
	cp, err := parseEncoding(line)
	if err != nil {
		return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: missing encoding: %v", ErrMalformedRecord, err))
	}

	var bbx [4]int
	for {
		line, ok := d.scan()
		if !ok {
			return bdfatlas.Glyph{}, d.eof(name, "missing bounding box")
		}
		kw, rest := splitKeyword(line)
		if kw == "STARTCHAR" {
			return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: missing bounding box", ErrMalformedRecord))
		}
		if kw != "BBX" {
			// SWIDTH, DWIDTH and friends
			continue
		}
		if bbx, err = parseBBX(rest); err != nil {
			return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: %v", ErrMalformedRecord, err))
		}
		break
	}
	w, h := bbx[0], bbx[1]

	line, ok = d.scan()
	if !ok {
		return bdfatlas.Glyph{}, d.eof(name, "missing bitmap marker")
	}
	if line != "BITMAP" {
		return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: missing bitmap marker, found %q", ErrMalformedRecord, line))
	}

	rowBytes := bdfatlas.RowBytes(w)
	rows := make([][]byte, h)
	for y := range rows {
		line, ok := d.scan()
		if !ok {
			return bdfatlas.Glyph{}, d.eof(name, fmt.Sprintf("bitmap ends after %d of %d rows", y, h))
		}
		row, err := decodeRow(line)
		if err != nil {
			return bdfatlas.Glyph{}, d.fail(name, err)
		}
		if len(row) != rowBytes {
			return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: %d bytes for width %d, want %d",
				ErrRowLengthMismatch, len(row), w, rowBytes))
		}
		rows[y] = row
	}

	g, err := bdfatlas.NewGlyph(name, cp, w, h, bbx[2], bbx[3], rows)
	if err != nil {
		return bdfatlas.Glyph{}, d.fail(name, fmt.Errorf("%w: %v", ErrMalformedRecord, err))
	}
	return g, nil
}

func splitKeyword(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// parseEncoding reads "ENCODING n". A trailing non-standard index, as in
// "ENCODING -1 123", is not accepted since n must be a real code point.
func parseEncoding(line string) (int, error) {
	kw, rest := splitKeyword(line)
	if kw != "ENCODING" {
		return 0, fmt.Errorf("found %q", line)
	}
	f := strings.Fields(rest)
	if len(f) == 0 {
		return 0, fmt.Errorf("no code point")
	}
	cp, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, err
	}
	if cp < 0 {
		return 0, fmt.Errorf("negative code point %d", cp)
	}
	return cp, nil
}

// parseBBX reads "width height xoff yoff".
func parseBBX(rest string) ([4]int, error) {
	var bbx [4]int
	f := strings.Fields(rest)
	if len(f) != 4 {
		return bbx, fmt.Errorf("bounding box %q needs 4 integers", rest)
	}
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil {
			return bbx, fmt.Errorf("bounding box %q: %v", rest, err)
		}
		bbx[i] = n
	}
	if bbx[0] <= 0 || bbx[1] <= 0 {
		return bbx, fmt.Errorf("bounding box %dx%d is empty", bbx[0], bbx[1])
	}
	return bbx, nil
}

func decodeRow(line string) ([]byte, error) {
	if len(line)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrOddHexLength, line)
	}
	row, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("%w: bitmap row %q: %v", ErrMalformedRecord, line, err)
	}
	return row, nil
}

// Parse reads every glyph from r. It fails on the first malformed record.
func Parse(r io.Reader) ([]bdfatlas.Glyph, error) {
	d := NewDecoder(r)
	var glyphs []bdfatlas.Glyph
	for {
		g, err := d.Next()
		if err == io.EOF {
			return glyphs, nil
		}
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
}

// ParseLines is Parse over lines that have already been split.
func ParseLines(lines []string) ([]bdfatlas.Glyph, error) {
	return Parse(strings.NewReader(strings.Join(lines, "\n")))
}
