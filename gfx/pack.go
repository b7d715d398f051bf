package gfx

import "github.com/abtrout/artwiz-gfx/bdf"

// PackBitmap re-packs a glyph's byte-padded bitmap rows into the bit-tight
// stream a GFX renderer reads: Width bits per row, rows concatenated top
// row first, eight bits per byte MSB first, with the final byte zero
// padded. Glyphs with an empty bounding box pack to nothing.
func PackBitmap(g *bdf.Glyph) []byte {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}

	// BDF pads every row out to a byte boundary, so the visible bits sit
	// at the top of the padded width. A row value too small to supply all
	// Width bits reads its missing high bits as 0.
	rowBits := (g.Width + 7) / 8 * 8

	packed := make([]byte, (len(g.Rows)*g.Width+7)/8)
	n := 0
	for _, row := range g.Rows {
		for i := 0; i < g.Width; i++ {
			if row>>(rowBits-1-i)&1 == 1 {
				packed[n>>3] |= 1 << (7 - n&7)
			}
			n++
		}
	}

	return packed
}
