package gfx

import (
	"fmt"
	"io"
	"strings"
)

const headerTemplate = `// Font: %s
// Converted from BDF to Adafruit GFX format

#pragma once

#include <Adafruit_GFX.h>

const uint8_t %sBitmaps[] PROGMEM = {
%s};

const GFXglyph %sGlyphs[] PROGMEM = {
%s
};

const GFXfont %s PROGMEM = {
    (uint8_t*)%sBitmaps,
    (GFXglyph*)%sGlyphs,
    0x%02X, 0x%02X, %d};

// Approx. %d bytes
`

// WriteHeader renders a table as a C header in the Adafruit GFX font
// format: the bitmap array sixteen bytes per line, the glyph descriptor
// array column aligned with a character comment per entry, then the
// GFXfont struct. The output is byte-for-byte stable for a given table.
func WriteHeader(w io.Writer, t *Table, fontName, varName string) error {
	_, err := fmt.Fprintf(w, headerTemplate,
		fontName,
		varName, bitmapLines(t.Bitmap),
		varName, glyphLines(t.Glyphs),
		varName, varName, varName,
		t.First, t.Last, t.Height,
		t.ApproxSize())
	return err
}

// VarName derives a C identifier from a font file's base name.
func VarName(stem string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(stem)
}

func bitmapLines(bitmap []byte) string {
	lines := []string{}
	for i := 0; i < len(bitmap); i += 16 {
		end := i + 16
		if end > len(bitmap) {
			end = len(bitmap)
		}

		hexes := make([]string, 0, end-i)
		for _, b := range bitmap[i:end] {
			hexes = append(hexes, fmt.Sprintf("0x%02X", b))
		}

		line := "    " + strings.Join(hexes, ", ")
		if end < len(bitmap) {
			line += ","
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func glyphLines(glyphs []GlyphDescriptor) string {
	data := make([]string, len(glyphs))
	widest := 0
	for i, d := range glyphs {
		comma := ","
		if i == len(glyphs)-1 {
			comma = ""
		}
		data[i] = fmt.Sprintf("    {%d, %d, %d, %d, %d, %d}%s",
			d.BitmapOffset, d.Width, d.Height, d.XAdvance, d.XOffset, d.YOffset, comma)
		if len(data[i]) > widest {
			widest = len(data[i])
		}
	}

	lines := make([]string, len(glyphs))
	for i, d := range glyphs {
		lines[i] = fmt.Sprintf("%-*s // 0x%02X '%c'", widest, data[i], d.Encoding, rune(d.Encoding))
	}
	return strings.Join(lines, "\n")
}
