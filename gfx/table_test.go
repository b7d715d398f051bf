package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abtrout/artwiz-gfx/bdf"
)

func glyph(code, advance, w, h, xoff, yoff int, rows ...uint64) *bdf.Glyph {
	return &bdf.Glyph{
		Encoding: code,
		Advance:  advance,
		Width:    w,
		Height:   h,
		XOffset:  xoff,
		YOffset:  yoff,
		Rows:     rows,
	}
}

func fontWith(glyphs ...*bdf.Glyph) *bdf.Font {
	f := &bdf.Font{Ascent: 9, Descent: 2, Glyphs: make(map[int]*bdf.Glyph)}
	for _, g := range glyphs {
		f.Glyphs[g.Encoding] = g
	}
	return f
}

func TestBuildTableSelection(t *testing.T) {
	table, err := BuildTable(fontWith(
		glyph(9, 4, 1, 1, 0, 0, 0x80),
		glyph(32, 3, 0, 0, 0, 0),
		glyph(65, 6, 5, 7, 0, 0, 0x70, 0x88, 0x88, 0xF8, 0x88, 0x88, 0x88),
		glyph(126, 6, 5, 2, 0, 3, 0x68, 0xB0),
		glyph(200, 6, 5, 7, 0, 0, 0x70, 0x88, 0x88, 0xF8, 0x88, 0x88, 0x88),
	))
	require.NoError(t, err)

	require.Len(t, table.Glyphs, 3)
	codes := []int{}
	for _, d := range table.Glyphs {
		codes = append(codes, d.Encoding)
	}
	assert.Equal(t, []int{32, 65, 126}, codes)
	assert.Equal(t, 32, table.First)
	assert.Equal(t, 126, table.Last)
	assert.Equal(t, 11, table.Height)
}

func TestBuildTableOffsets(t *testing.T) {
	table, err := BuildTable(fontWith(
		glyph(32, 3, 0, 0, 0, 0),
		glyph(65, 6, 5, 7, 0, 0, 0x70, 0x88, 0x88, 0xF8, 0x88, 0x88, 0x88),
		glyph(66, 6, 5, 3, 0, 0, 0xF8, 0xA8, 0x50),
		glyph(67, 9, 8, 2, 1, 0, 0xFF, 0x81),
	))
	require.NoError(t, err)
	require.Len(t, table.Glyphs, 4)

	// Every offset equals the running sum of the packed lengths before
	// it, and the last offset plus the last length covers the stream.
	offset := 0
	for _, d := range table.Glyphs {
		assert.Equal(t, offset, d.BitmapOffset, "glyph 0x%02X", d.Encoding)
		offset += (d.Width*d.Height + 7) / 8
	}
	assert.Equal(t, offset, len(table.Bitmap))

	// Space contributes no bytes; A and B share A's end as B's start.
	assert.Equal(t, 0, table.Glyphs[0].BitmapOffset)
	assert.Equal(t, 0, table.Glyphs[1].BitmapOffset)
	assert.Equal(t, 5, table.Glyphs[2].BitmapOffset)
	assert.Equal(t, 7, table.Glyphs[3].BitmapOffset)
}

func TestBuildTableNoGlyphs(t *testing.T) {
	_, err := BuildTable(fontWith(
		glyph(9, 4, 1, 1, 0, 0, 0x80),
		glyph(200, 6, 5, 7, 0, 0, 0x70),
	))
	require.ErrorIs(t, err, ErrNoGlyphs)
}

func TestBuildTableEmptyFont(t *testing.T) {
	_, err := BuildTable(&bdf.Font{Glyphs: map[int]*bdf.Glyph{}})
	require.ErrorIs(t, err, ErrNoGlyphs)
}

func TestBuildTableYOffsetSign(t *testing.T) {
	table, err := BuildTable(fontWith(glyph(103, 6, 5, 7, 0, -2, 0x78, 0x88, 0x88, 0x78, 0x08, 0x88, 0x70)))
	require.NoError(t, err)
	assert.Equal(t, -5, table.Glyphs[0].YOffset)
}

func TestBuildTableDescriptorFields(t *testing.T) {
	table, err := BuildTable(fontWith(glyph(65, 6, 5, 7, 1, 0, 0x70, 0x88, 0x88, 0xF8, 0x88, 0x88, 0x88)))
	require.NoError(t, err)

	d := table.Glyphs[0]
	assert.Equal(t, 5, d.Width)
	assert.Equal(t, 7, d.Height)
	assert.Equal(t, 6, d.XAdvance)
	assert.Equal(t, 1, d.XOffset)
	assert.Equal(t, -7, d.YOffset)
}

func TestApproxSize(t *testing.T) {
	table, err := BuildTable(fontWith(
		glyph(32, 3, 0, 0, 0, 0),
		glyph(66, 6, 5, 3, 0, 0, 0xF8, 0xA8, 0x50),
	))
	require.NoError(t, err)
	assert.Equal(t, 2+2*7+7, table.ApproxSize())
}

func TestDescriptorLookup(t *testing.T) {
	table, err := BuildTable(fontWith(
		glyph(32, 3, 0, 0, 0, 0),
		glyph(65, 6, 5, 7, 0, 0, 0x70, 0x88, 0x88, 0xF8, 0x88, 0x88, 0x88),
	))
	require.NoError(t, err)

	d, ok := table.Descriptor(65)
	require.True(t, ok)
	assert.Equal(t, 65, d.Encoding)

	_, ok = table.Descriptor(66)
	assert.False(t, ok)
}

func TestPixelAtRoundTrip(t *testing.T) {
	// Reading pixels back through the packed stream must reproduce the
	// source rows bit for bit.
	rows := []uint64{0xF8, 0xA8, 0x50}
	table, err := BuildTable(fontWith(glyph(66, 6, 5, 3, 0, 0, rows...)))
	require.NoError(t, err)

	d := table.Glyphs[0]
	for y, row := range rows {
		for x := 0; x < d.Width; x++ {
			want := row>>(7-x)&1 == 1
			assert.Equal(t, want, table.PixelAt(d, x, y), "pixel (%d,%d)", x, y)
		}
	}
}
