package main

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/unicode/runenames"

	"github.com/pbnjay/bdfatlas"
	"github.com/pbnjay/bdfatlas/internal/bdf"
	"github.com/pbnjay/bdfatlas/internal/glyphfilter"
)

// icon aliases a microui icon id to the glyph drawn for it.
type icon struct {
	ID        string
	CodePoint int
}

var defaultIcons = []icon{
	{"MU_ICON_CLOSE", 'x'},
	{"MU_ICON_CHECK", '@'},
	{"MU_ICON_EXPANDED", 'v'},
	{"MU_ICON_COLLAPSED", '>'},
}

// texturePerLine is the number of texture bytes written on each line.
const texturePerLine = 12

// glyphComment names cp for humans reading the table.
func glyphComment(p bdfatlas.Placement) string {
	if p.CodePoint < 0 {
		return p.Name
	}
	name := runenames.Name(rune(p.CodePoint))
	if name == "" {
		name = p.Name
	}
	return fmt.Sprintf("U+%04X %s", p.CodePoint, name)
}

// writeC serializes the atlas as a C include for microui: dimensions,
// texture bytes and a mu_Rect table indexed by ATLAS_FONT + code point.
func writeC(w io.Writer, a *bdfatlas.Atlas, hdr bdf.Header, icons []icon) error {
	bw := bufio.NewWriter(w)

	if hdr.FontName != "" {
		fmt.Fprintf(bw, "/* Based on font %s */\n\n", hdr.FontName)
	}

	textW, textH := 0, 0
	if len(a.Placements) > 0 {
		textW, textH = a.Placements[0].W, a.Placements[0].H
	}
	fmt.Fprintf(bw, "static const int atlas_text_width = %d;\n", textW)
	fmt.Fprintf(bw, "static const int atlas_text_height = %d;\n\n", textH)
	fmt.Fprintf(bw, "enum { ATLAS_WHITE = MU_ICON_MAX, ATLAS_FONT };\n")
	fmt.Fprintf(bw, "enum { ATLAS_WIDTH = %d, ATLAS_HEIGHT = %d };\n\n", a.Width, a.Height)

	fmt.Fprintf(bw, "static unsigned char atlas_texture[ATLAS_WIDTH * ATLAS_HEIGHT] = {\n")
	for i, px := range a.Pix {
		if i%texturePerLine == 0 {
			bw.WriteString("  ")
		}
		fmt.Fprintf(bw, "%d,", px)
		if i%texturePerLine == texturePerLine-1 || i == len(a.Pix)-1 {
			bw.WriteString("\n")
		} else {
			bw.WriteString(" ")
		}
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "static mu_Rect atlas[] = {\n")
	for _, p := range a.Placements {
		if p.CodePoint == bdfatlas.FillerCodePoint {
			if p.Name == glyphfilter.FillerName {
				fmt.Fprintf(bw, "  [ATLAS_WHITE] = { %d, %d, %d, %d },\n", p.X, p.Y, p.W, p.H)
			}
			continue
		}
		fmt.Fprintf(bw, "  [ATLAS_FONT + %d] = { %d, %d, %d, %d }, /* %s */\n",
			p.CodePoint, p.X, p.Y, p.W, p.H, glyphComment(p))
	}
	for _, ic := range icons {
		p, ok := a.LookupCode(ic.CodePoint)
		if !ok {
			continue
		}
		sd := &bdfatlas.StringDrawable{}
		a.DrawRect(sd, 0, 0, p.Rect, nil)
		fmt.Fprintf(bw, "  /*\n%s   */\n", sd.PrefixString("   * "))
		fmt.Fprintf(bw, "  [%s] = { %d, %d, %d, %d },\n", ic.ID, p.X, p.Y, p.W, p.H)
	}
	fmt.Fprintf(bw, "};\n")

	return bw.Flush()
}
