package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abtrout/artwiz-gfx/bdf"
	"github.com/abtrout/artwiz-gfx/gfx"
)

var args struct {
	NoWrite    bool   `short:"w" help:"Parse and convert but do not write any files"`
	Stdout     bool   `short:"c" help:"Write the generated header to stdout instead of a file. Only valid with a single input"`
	OutputPath string `short:"o" default:"." type:"path" help:"Output directory for generated headers"`
	Name       string `short:"n" help:"Override the generated C identifier. Defaults to the input file name"`

	Preview      string `short:"p" help:"Render this sample text to an image next to each header"`
	PreviewScale int    `default:"4" help:"Integer pixel scale of preview images"`
	Foreground   string `name:"fg" default:"#000000" help:"Preview foreground color"`
	Background   string `name:"bg" default:"#FFFFFF" help:"Preview background color"`
	ImageFormat  string `short:"f" enum:"jpg,png" default:"png" help:"Preview image format. Supports png and jpg"`
	ImageQuality int    `short:"q" default:"90" help:"Preview image quality. Only applies to jpg images"`

	Verbose bool `short:"v" help:"Enable debug logging"`

	InputBDF []string `arg:"" name:"input" help:"Paths to input BDF fonts" type:"path"`
}

func main() {
	kong.Parse(&args)

	log.SetOutput(os.Stderr)
	if args.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if args.Stdout && len(args.InputBDF) > 1 {
		log.Fatalln("--stdout supports a single input font")
	}

	if !args.NoWrite && !args.Stdout {
		if _, err := os.Stat(args.OutputPath); os.IsNotExist(err) {
			os.MkdirAll(args.OutputPath, os.ModePerm)
		}
	}

	// Fonts are independent of each other, so convert them concurrently.
	var group errgroup.Group
	for _, path := range args.InputBDF {
		path := path
		group.Go(func() error {
			return convert(path)
		})
	}

	endIfErr(group.Wait())
}

func convert(path string) error {
	font, err := bdf.ParseFile(path)
	if err != nil {
		return errors.Wrap(err, path)
	}

	table, err := gfx.BuildTable(font)
	if err != nil {
		return errors.Wrap(err, path)
	}

	name := args.Name
	if name == "" {
		name = gfx.VarName(stem(path))
	}

	log.WithFields(log.Fields{
		"font":        font.Name,
		"glyphs":      len(table.Glyphs),
		"bitmapBytes": len(table.Bitmap),
		"approxBytes": table.ApproxSize(),
	}).Infof("converted %s", path)

	if args.Stdout {
		return gfx.WriteHeader(os.Stdout, table, font.Name, name)
	}
	if args.NoWrite {
		return nil
	}

	headerPath := filepath.Join(args.OutputPath, stem(path)+".h")
	if err := writeHeaderFile(headerPath, table, font.Name, name); err != nil {
		return err
	}
	log.Debugf("wrote %s", headerPath)

	if args.Preview != "" {
		img := renderPreview(table, args.Preview)
		imgPath := filepath.Join(args.OutputPath, stem(path)+"."+args.ImageFormat)
		if err := writeImage(args.ImageFormat, img, imgPath, args.ImageQuality); err != nil {
			return err
		}
		log.Debugf("wrote %s", imgPath)
	}

	return nil
}

func writeHeaderFile(name string, t *gfx.Table, fontName, varName string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fd.Close()

	return gfx.WriteHeader(fd, t, fontName, varName)
}
