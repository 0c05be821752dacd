// Command bdfdump opens a BDF format font and prints every glyph as text, the
// way atlasgen will draw it into an atlas.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbnjay/bdfatlas"
	"github.com/pbnjay/bdfatlas/internal/bdf"
)

// dumpGlyph renders g one scanline per line, footprint wide, padding bits
// included.
func dumpGlyph(g bdfatlas.Glyph) string {
	s := []string{}
	for _, row := range g.Rows {
		raster := ""
		for x := 0; x < g.Footprint(); x++ {
			if row[x/8]&(1<<uint(7-x%8)) != 0 {
				raster += "X"
			} else {
				raster += " "
			}
		}
		s = append(s, fmt.Sprintf("%s  [%s]", label(g), raster))
	}
	return strings.Join(s, "\n")
}

func label(g bdfatlas.Glyph) string {
	if g.CodePoint < 0 {
		return g.Name
	}
	return fmt.Sprintf("%c", rune(g.CodePoint))
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "USAGE: %s filename.bdf > filename.txt\n", os.Args[0])
		os.Exit(1)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	glyphs, err := bdf.Parse(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, g := range glyphs {
		fmt.Println(dumpGlyph(g))
	}
}
