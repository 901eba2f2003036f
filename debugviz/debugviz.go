// Package debugviz draws the tokens, bands and rulings of a reconstructed
// table into a PNG, for checking why a token landed in a given cell.
package debugviz

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/tabextract/model"
)

// DefaultScale is the number of pixels per page unit
const DefaultScale = 2.0

const (
	margin       = 10
	maxDimension = 8192
)

var (
	background   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	rowColor     = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	colColor     = color.RGBA{0x2c, 0xa0, 0x2c, 0xff}
	tokenColor   = color.RGBA{0x80, 0x80, 0x80, 0xff}
	rulingColor  = color.RGBA{0xd6, 0x27, 0x28, 0xff}
	labelColor   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	emptyOverlay = color.RGBA{0xff, 0xf4, 0xd6, 0xff}
)

// Options controls rendering.
type Options struct {
	// Scale is pixels per page unit; 0 means DefaultScale.
	Scale float64
	// Labels draws each token's text at its top-left corner.
	Labels bool
	// ShadeEmpty fills cells that received no token.
	ShadeEmpty bool
}

// Render draws the overlay. Row band edges are blue, column band edges
// green, token boxes gray and rulings red.
func Render(table *model.Table, tokens []model.TextToken, rulings []model.Ruling, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("scale must be positive, got %v", scale)
	}

	bounds := extent(table, tokens)
	w := int(math.Ceil(bounds.Width*scale)) + 2*margin
	h := int(math.Ceil(bounds.Height*scale)) + 2*margin
	if w > maxDimension || h > maxDimension {
		return nil, fmt.Errorf("overlay of %dx%d pixels exceeds %d", w, h, maxDimension)
	}

	c := &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		origin: model.Point{X: bounds.Left(), Y: bounds.Top()},
		scale:  scale,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if opts.ShadeEmpty {
		for _, row := range table.Rows {
			for _, cell := range row {
				if cell.IsEmpty() {
					c.fill(table.RowBands[cell.Row], table.ColBands[cell.Col], emptyOverlay)
				}
			}
		}
	}

	if !table.IsEmpty() {
		left, right := table.BBox.Left(), table.BBox.Right()
		top, bottom := table.BBox.Top(), table.BBox.Bottom()
		for _, b := range table.RowBands {
			c.hLine(b.Low, left, right, rowColor)
			c.hLine(b.High, left, right, rowColor)
		}
		for _, b := range table.ColBands {
			c.vLine(b.Low, top, bottom, colColor)
			c.vLine(b.High, top, bottom, colColor)
		}
	}

	for _, t := range tokens {
		c.rect(t.Left, t.Top, t.Right, t.Bottom, tokenColor)
	}

	for _, r := range rulings {
		if r.IsHorizontal() {
			c.hLine(r.Position, r.Start, r.End, rulingColor)
		} else {
			c.vLine(r.Position, r.Start, r.End, rulingColor)
		}
	}

	if opts.Labels {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(labelColor),
			Face: basicfont.Face7x13,
		}
		ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
		for _, t := range tokens {
			x, y := c.point(t.Left, t.Top)
			d.Dot = fixed.P(x+1, y+ascent)
			d.DrawString(t.Text)
		}
	}

	return c.img, nil
}

// WritePNG renders the overlay and encodes it as PNG.
func WritePNG(w io.Writer, table *model.Table, tokens []model.TextToken, rulings []model.Ruling, opts Options) error {
	img, err := Render(table, tokens, rulings, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// extent returns the page area covered by the table and the tokens.
func extent(table *model.Table, tokens []model.TextToken) model.BBox {
	var bounds model.BBox
	have := false
	if !table.IsEmpty() {
		bounds, have = table.BBox, true
	}
	if len(tokens) > 0 {
		tb := model.TokensBBox(tokens)
		if have {
			bounds = bounds.Union(tb)
		} else {
			bounds = tb
		}
	}
	return bounds
}

// canvas maps page coordinates onto the image
type canvas struct {
	img    *image.RGBA
	origin model.Point
	scale  float64
}

func (c *canvas) point(x, y float64) (int, int) {
	px := int(math.Round((x-c.origin.X)*c.scale)) + margin
	py := int(math.Round((y-c.origin.Y)*c.scale)) + margin
	return px, py
}

func (c *canvas) hLine(y, x1, x2 float64, col color.RGBA) {
	px1, py := c.point(x1, y)
	px2, _ := c.point(x2, y)
	for x := px1; x <= px2; x++ {
		c.img.SetRGBA(x, py, col)
	}
}

func (c *canvas) vLine(x, y1, y2 float64, col color.RGBA) {
	px, py1 := c.point(x, y1)
	_, py2 := c.point(x, y2)
	for y := py1; y <= py2; y++ {
		c.img.SetRGBA(px, y, col)
	}
}

func (c *canvas) rect(left, top, right, bottom float64, col color.RGBA) {
	c.hLine(top, left, right, col)
	c.hLine(bottom, left, right, col)
	c.vLine(left, top, bottom, col)
	c.vLine(right, top, bottom, col)
}

func (c *canvas) fill(row, col model.Band, clr color.RGBA) {
	x1, y1 := c.point(col.Low, row.Low)
	x2, y2 := c.point(col.High, row.High)
	draw.Draw(c.img, image.Rect(x1, y1, x2, y2), image.NewUniform(clr), image.Point{}, draw.Src)
}
