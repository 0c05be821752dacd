package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/pbnjay/bdfatlas"
)

// writePreview encodes the atlas as an image chosen by the file extension.
func writePreview(name string, a *bdfatlas.Atlas) error {
	if a.Width == 0 || a.Height == 0 {
		return fmt.Errorf("atlas is empty (%dx%d)", a.Width, a.Height)
	}
	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("unsupported preview format %q", ext)
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	err = encode(f, a)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
