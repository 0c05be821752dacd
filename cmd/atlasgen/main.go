// atlasgen is a commandline tool for packing a BDF pixel font into a single
// texture atlas with a rectangle lookup table. Ex:
//
//      ./atlasgen -f unifont.bdf -o atlas.inl
//
// The default output is a C include file for microui-style renderers: the
// atlas dimensions, the texture bytes, and one mu_Rect per glyph. Use
// --format json for a language-neutral table, and --preview atlas.png to
// look at the packed texture.
//
package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	flags "github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/pbnjay/bdfatlas"
	"github.com/pbnjay/bdfatlas/internal/bdf"
	"github.com/pbnjay/bdfatlas/internal/glyphfilter"
)

type config struct {
	Font      flags.Filename `short:"f" long:"font"        description:"path to BDF font file" default:"unifont-14.0.01.bdf"`
	Out       flags.Filename `short:"o" long:"out"         description:"output file, - for stdout" default:"atlas.inl"`
	Format    string         `long:"format"                description:"table format" choice:"c" choice:"json" default:"c"`
	Mode      string         `short:"m" long:"mode"        description:"fixed size or width-bound auto height" choice:"fixed" choice:"auto" default:"fixed"`
	Width     int            `short:"w" long:"width"       description:"atlas width in pixels"  default:"1024"`
	Height    int            `long:"height"                 description:"atlas height in pixels (fixed mode)" default:"512"`
	RowHeight int            `short:"r" long:"row-height"  description:"glyph row height in pixels" default:"16"`
	Ranges    []string       `long:"range"                 description:"extra code point range, e.g. 0x20-0x7e (repeatable)"`
	NoDefault bool           `long:"no-default-ranges"     description:"only keep glyphs from --range"`
	NoFiller  bool           `long:"no-filler"             description:"do not append the all-white glyph"`
	FillerW   int            `long:"filler-width"          description:"all-white glyph width in pixels" default:"8"`
	Preview   flags.Filename `short:"p" long:"preview"     description:"also write the atlas as .png or .bmp"`
	Debug     bool           `short:"d" long:"debug"       description:"display some debug information"`
}

var conf config

var logger *zap.SugaredLogger

func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to create logger:", err)
		os.Exit(1)
	}
	return l.Sugar()
}

func (c *config) filter() (glyphfilter.Config, error) {
	var fc glyphfilter.Config
	if !c.NoDefault {
		fc.Ranges = glyphfilter.DefaultRanges()
	}
	for _, s := range c.Ranges {
		r, err := glyphfilter.ParseRange(s)
		if err != nil {
			return fc, err
		}
		fc.Ranges = append(fc.Ranges, r)
	}
	fc.Filler = !c.NoFiller
	fc.FillerWidth = c.FillerW
	fc.FillerHeight = c.RowHeight
	return fc, nil
}

func (c *config) pack() bdfatlas.Options {
	opts := bdfatlas.Options{
		Mode:      bdfatlas.FixedSize,
		Width:     c.Width,
		Height:    c.Height,
		RowHeight: c.RowHeight,
	}
	if c.Mode == "auto" {
		opts.Mode = bdfatlas.AutoHeight
	}
	return opts
}

// build runs the whole pipeline for one font file.
func build(c *config) (*bdfatlas.Atlas, bdf.Header, error) {
	f, err := os.Open(string(c.Font))
	if err != nil {
		return nil, bdf.Header{}, err
	}
	defer f.Close()

	logger.Infow("parsing bitmaps", "font", c.Font)
	dec := bdf.NewDecoder(f)
	var glyphs []bdfatlas.Glyph
	for {
		g, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, dec.Header(), err
		}
		logger.Debugw("glyph", "name", g.Name, "encoding", g.CodePoint, "width", g.Width, "height", g.Height)
		glyphs = append(glyphs, g)
	}
	hdr := dec.Header()
	logger.Infow("parsed font", "name", hdr.FontName, "declared", hdr.NumGlyphs, "glyphs", len(glyphs))

	fc, err := c.filter()
	if err != nil {
		return nil, hdr, err
	}
	logger.Infow("filtering bitmaps", "ranges", len(fc.Ranges), "filler", fc.Filler)
	glyphs, err = glyphfilter.Filter(fc, glyphs)
	if err != nil {
		return nil, hdr, err
	}
	logger.Infow("filtered bitmaps", "glyphs", len(glyphs))

	opts := c.pack()
	logger.Infow("packing atlas", "mode", opts.Mode, "width", opts.Width, "height", opts.Height, "rowHeight", opts.RowHeight)
	atlas, err := bdfatlas.Pack(glyphs, opts)
	if err != nil {
		return nil, hdr, err
	}
	return atlas, hdr, nil
}

func main() {
	parser := flags.NewParser(&conf, flags.Default)
	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	logger = newLogger(conf.Debug)
	defer logger.Sync()

	if len(args) > 0 {
		logger.Fatalw("unexpected arguments", "args", args)
	}

	atlas, hdr, err := build(&conf)
	if err != nil {
		logger.Fatalw("unable to build atlas", "err", err)
	}
	logger.Infow("packed atlas", "width", atlas.Width, "height", atlas.Height, "glyphs", len(atlas.Placements))

	b := &bytes.Buffer{}
	switch conf.Format {
	case "json":
		err = writeJSON(b, atlas)
	default:
		err = writeC(b, atlas, hdr, defaultIcons)
	}
	if err != nil {
		logger.Fatalw("unable to serialize atlas", "format", conf.Format, "err", err)
	}

	if conf.Out == "-" {
		os.Stdout.Write(b.Bytes())
	} else if err := ioutil.WriteFile(string(conf.Out), b.Bytes(), 0644); err != nil {
		logger.Fatalw("unable to write table", "out", conf.Out, "err", err)
	} else {
		logger.Infow("wrote table", "out", conf.Out, "bytes", b.Len())
	}

	if conf.Preview != "" {
		if err := writePreview(string(conf.Preview), atlas); err != nil {
			logger.Fatalw("unable to write preview", "preview", conf.Preview, "err", err)
		}
		logger.Infow("wrote preview", "preview", conf.Preview)
	}
}
