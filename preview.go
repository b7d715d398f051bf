package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/golang/geo/r2"
	colorful "github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/abtrout/artwiz-gfx/gfx"
)

// renderPreview rasterizes a sample string through the finished table,
// decoding the packed bitmap stream the same way the embedded renderer
// will. Characters without a table entry are skipped.
func renderPreview(t *gfx.Table, sample string) image.Image {
	fg, bg := previewColors()

	// Lay the sample out along a baseline at y=0, downward-positive, and
	// take the union of every glyph box to size the canvas. The advance
	// strip reserves the declared line height even for boxless glyphs.
	extent := r2.RectFromPoints(
		r2.Point{X: 0, Y: float64(-t.Height)},
		r2.Point{X: 0, Y: 0},
	)
	penX := 0
	for _, r := range sample {
		d, ok := t.Descriptor(int(r))
		if !ok {
			continue
		}
		extent = extent.Union(glyphRect(d, penX))
		penX += d.XAdvance
	}
	extent = extent.Union(r2.RectFromPoints(r2.Point{X: float64(penX), Y: 0}))

	const pad = 1
	originX := int(math.Floor(extent.X.Lo))
	originY := int(math.Floor(extent.Y.Lo))
	w := int(math.Ceil(extent.X.Hi)) - originX
	h := int(math.Ceil(extent.Y.Hi)) - originY

	img := image.NewRGBA(image.Rect(0, 0, w+2*pad, h+2*pad))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	penX = 0
	for _, r := range sample {
		d, ok := t.Descriptor(int(r))
		if !ok {
			continue
		}
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				if t.PixelAt(d, x, y) {
					img.Set(
						pad+penX+d.XOffset+x-originX,
						pad+d.YOffset+y-originY,
						fg,
					)
				}
			}
		}
		penX += d.XAdvance
	}

	return scaleImage(img, args.PreviewScale)
}

// glyphRect is a glyph's bounding box positioned at penX on a baseline at
// y=0, in the downward-positive coordinates of the corrected descriptor
// offsets.
func glyphRect(d gfx.GlyphDescriptor, penX int) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: float64(penX + d.XOffset), Y: float64(d.YOffset)},
		r2.Point{X: float64(penX + d.XOffset + d.Width), Y: float64(d.YOffset + d.Height)},
	)
}

func previewColors() (color.Color, color.Color) {
	fg, err := colorful.Hex(args.Foreground)
	endIfErr(err)

	bg, err := colorful.Hex(args.Background)
	endIfErr(err)

	_, _, lf := fg.Hsl()
	_, _, lb := bg.Hsl()
	if math.Abs(lf-lb) < 0.2 {
		log.Warnf("preview colors %s and %s have low contrast", args.Foreground, args.Background)
	}

	return fg, bg
}

func scaleImage(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func writeImage(format string, img image.Image, name string, quality int) error {
	if format == "jpg" {
		return writeJPGImage(img, name, quality)
	}

	return writePNGImage(img, name)
}

func writeJPGImage(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return jpeg.Encode(fd, img, &jpeg.Options{Quality: quality})
}

func writePNGImage(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return png.Encode(fd, img)
}
