package main

import (
	"encoding/hex"
	"io"

	"github.com/Jeffail/gabs/v2"

	"github.com/pbnjay/bdfatlas"
)

// writeJSON serializes the atlas as
//
//	{"width":W,"height":H,"pixels":[...],"glyphs":[{"name":..,"codepoint":..,"x":..,"y":..,"w":..,"h":..,"bitmap":[hex rows]}]}
func writeJSON(w io.Writer, a *bdfatlas.Atlas) error {
	obj := gabs.New()
	if _, err := obj.Set(a.Width, "width"); err != nil {
		return err
	}
	if _, err := obj.Set(a.Height, "height"); err != nil {
		return err
	}

	// []uint8 would be encoded as base64
	pix := make([]int, len(a.Pix))
	for i, px := range a.Pix {
		pix[i] = int(px)
	}
	if _, err := obj.Set(pix, "pixels"); err != nil {
		return err
	}

	if _, err := obj.Array("glyphs"); err != nil {
		return err
	}
	for _, p := range a.Placements {
		rows, err := a.EncodeRows(p.Rect)
		if err != nil {
			return err
		}
		bitmap := make([]string, len(rows))
		for i, row := range rows {
			bitmap[i] = hex.EncodeToString(row)
		}

		g := gabs.New()
		fields := []struct {
			key   string
			value interface{}
		}{
			{"name", p.Name},
			{"codepoint", p.CodePoint},
			{"x", p.X},
			{"y", p.Y},
			{"w", p.W},
			{"h", p.H},
			{"bitmap", bitmap},
		}
		for _, f := range fields {
			if _, err := g.Set(f.value, f.key); err != nil {
				return err
			}
		}
		if err := obj.ArrayAppend(g.Data(), "glyphs"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, obj.String()+"\n")
	return err
}
