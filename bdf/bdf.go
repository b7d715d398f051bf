// Package bdf reads the subset of the Glyph Bitmap Distribution Format
// needed to convert a pixel font: the global metrics plus each glyph's
// bounding box, advance and raw bitmap rows. Everything else in the file
// is ignored.
package bdf

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Font holds the parsed contents of one BDF file.
type Font struct {
	Name    string
	Ascent  int
	Descent int
	Glyphs  map[int]*Glyph
}

// Glyph is a single character. Rows hold the bitmap values exactly as
// encoded in the file: one value per row, top row first, with the visible
// Width bits MSB-aligned inside the nearest multiple-of-8 bit width.
// XOffset and YOffset place the box relative to the baseline origin, with
// y growing upward.
type Glyph struct {
	Encoding int
	Advance  int
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	Rows     []uint64
}

type parserState int

const (
	stateIdle parserState = iota
	stateGlyph
	stateBitmap
)

// glyphBuilder accumulates directive values for one glyph region. The
// non-bitmap fields may arrive in any order; nothing here depends on it.
type glyphBuilder struct {
	encoding int
	advance  int
	width    int
	height   int
	xOffset  int
	yOffset  int
	rows     []uint64
}

func (b *glyphBuilder) build() *Glyph {
	return &Glyph{
		Encoding: b.encoding,
		Advance:  b.advance,
		Width:    b.width,
		Height:   b.height,
		XOffset:  b.xOffset,
		YOffset:  b.yOffset,
		Rows:     b.rows,
	}
}

type parser struct {
	font  *Font
	state parserState
	cur   *glyphBuilder
	line  int
}

// Parse reads a BDF font description. Unknown directives are skipped, and
// directives that need a current glyph are dropped when there is none; a
// numeric or hexadecimal field that fails to parse aborts the whole parse,
// since defaulting it would corrupt the converted table.
func Parse(r io.Reader) (*Font, error) {
	p := &parser{font: &Font{Glyphs: make(map[int]*Glyph)}}

	s := bufio.NewScanner(r)
	for s.Scan() {
		p.line++
		if err := p.feed(strings.TrimSpace(s.Text())); err != nil {
			return nil, errors.Wrapf(err, "line %d", p.line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading font")
	}

	// A glyph region cut short by EOF still keeps what it declared.
	p.commit()

	return p.font, nil
}

// ParseFile opens and parses the BDF font at path.
func ParseFile(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func (p *parser) feed(line string) error {
	fields := strings.Fields(line)
	key := ""
	if len(fields) > 1 {
		key = fields[0]
	}

	switch {
	case key == "FONT":
		if parts := strings.SplitN(line, " ", 2); len(parts) == 2 {
			p.font.Name = parts[1]
		}
	case key == "FONT_ASCENT":
		return intField(fields, 1, &p.font.Ascent)
	case key == "FONT_DESCENT":
		return intField(fields, 1, &p.font.Descent)
	case key == "STARTCHAR":
		p.commit()
		p.state = stateIdle
	case key == "ENCODING":
		p.commit()
		b := &glyphBuilder{}
		if err := intField(fields, 1, &b.encoding); err != nil {
			return err
		}
		p.cur = b
		p.state = stateGlyph
	case key == "DWIDTH" && p.cur != nil:
		return intField(fields, 1, &p.cur.advance)
	case key == "BBX" && p.cur != nil:
		for i, dst := range []*int{&p.cur.width, &p.cur.height, &p.cur.xOffset, &p.cur.yOffset} {
			if err := intField(fields, i+1, dst); err != nil {
				return err
			}
		}
	case line == "BITMAP":
		p.state = stateBitmap
	case p.state == stateBitmap && line == "ENDCHAR":
		p.commit()
		p.state = stateIdle
	case p.state == stateBitmap && p.cur != nil && line != "":
		row, err := strconv.ParseUint(line, 16, 64)
		if err != nil {
			return errors.Errorf("bad bitmap row %q", line)
		}
		p.cur.rows = append(p.cur.rows, row)
	}

	return nil
}

// commit finalizes the glyph region being accumulated, if any. A glyph
// seen twice keeps its last definition.
func (p *parser) commit() {
	if p.cur == nil {
		return
	}
	g := p.cur.build()
	p.font.Glyphs[g.Encoding] = g
	p.cur = nil
}

func intField(fields []string, i int, dst *int) error {
	if i >= len(fields) {
		return errors.Errorf("%s: missing field %d", fields[0], i)
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return errors.Errorf("%s: bad integer %q", fields[0], fields[i])
	}
	*dst = n
	return nil
}
