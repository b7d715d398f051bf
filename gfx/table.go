package gfx

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/abtrout/artwiz-gfx/bdf"
)

// ErrNoGlyphs is returned when a font defines no glyphs in the printable
// ASCII range; an empty table is of no use to a renderer.
var ErrNoGlyphs = errors.New("no printable ASCII glyphs found in font")

// GFX tables cover printable ASCII only.
const (
	firstPrintable = 32
	lastPrintable  = 126
)

// GlyphDescriptor mirrors one GFXglyph record: where the glyph's packed
// bits start in the shared bitmap stream, its box size, its advance, and
// its placement relative to the cursor. YOffset is downward-positive, the
// distance from the baseline up to the glyph's top row negated.
type GlyphDescriptor struct {
	Encoding     int
	BitmapOffset int
	Width        int
	Height       int
	XAdvance     int
	XOffset      int
	YOffset      int
}

// Table is a renderer-ready font: the concatenated packed bitmaps, one
// descriptor per glyph in ascending code order, and the GFXfont header
// fields.
type Table struct {
	Bitmap []byte
	Glyphs []GlyphDescriptor
	First  int
	Last   int
	Height int
}

// BuildTable selects the printable ASCII glyphs of font, packs each one
// and concatenates the results in ascending code order, recording every
// glyph's starting offset into the shared stream.
func BuildTable(font *bdf.Font) (*Table, error) {
	codes := make([]int, 0, len(font.Glyphs))
	for code := range font.Glyphs {
		if code >= firstPrintable && code <= lastPrintable {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, ErrNoGlyphs
	}
	sort.Ints(codes)

	t := &Table{
		First:  codes[0],
		Last:   codes[len(codes)-1],
		Height: font.Ascent + font.Descent,
	}

	for _, code := range codes {
		g := font.Glyphs[code]
		t.Glyphs = append(t.Glyphs, GlyphDescriptor{
			Encoding:     code,
			BitmapOffset: len(t.Bitmap),
			Width:        g.Width,
			Height:       g.Height,
			XAdvance:     g.Advance,
			XOffset:      g.XOffset,
			// BDF measures the box upward from the baseline; GFX wants
			// the top row's signed distance below the cursor.
			YOffset: -(g.YOffset + g.Height),
		})
		t.Bitmap = append(t.Bitmap, PackBitmap(g)...)
	}

	return t, nil
}

// ApproxSize estimates the flash footprint of the table: the bitmap bytes
// plus seven bytes per GFXglyph plus the GFXfont struct itself.
func (t *Table) ApproxSize() int {
	return len(t.Bitmap) + len(t.Glyphs)*7 + 7
}

// Descriptor returns the table entry for a character code, if present.
func (t *Table) Descriptor(code int) (GlyphDescriptor, bool) {
	i := sort.Search(len(t.Glyphs), func(i int) bool {
		return t.Glyphs[i].Encoding >= code
	})
	if i < len(t.Glyphs) && t.Glyphs[i].Encoding == code {
		return t.Glyphs[i], true
	}
	return GlyphDescriptor{}, false
}

// PixelAt reads pixel (x, y) of a glyph back out of the packed bitmap
// stream, exactly as an embedded renderer would.
func (t *Table) PixelAt(d GlyphDescriptor, x, y int) bool {
	bit := y*d.Width + x
	return t.Bitmap[d.BitmapOffset+bit>>3]>>(7-bit&7)&1 == 1
}
