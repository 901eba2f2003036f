package source

import (
	"math"
	"strings"
	"unicode"

	"github.com/tsawler/tabextract/model"
)

// glyph is one positioned run of text from a PDF content stream, in PDF
// space (origin bottom-left, y is the baseline).
type glyph struct {
	text     string
	x, y     float64
	width    float64
	fontSize float64
}

// rect is a filled or stroked rectangle in PDF space.
type rect struct {
	minX, minY, maxX, maxY float64
}

// Glyph metrics used when converting baselines to token boxes
const (
	ascentRatio     = 0.8
	spaceWidthRatio = 0.25
	fallbackSize    = 10.0
)

// buildWords merges glyphs into word tokens in top-left page coordinates.
// Glyphs are taken in content stream order. A word ends at a whitespace
// glyph, when the baseline moves by more than half the font size, when the
// next glyph starts before the current one ends by more than half the font
// size, or when the gap reaches half a space width.
func buildWords(glyphs []glyph, pageHeight float64) []model.TextToken {
	var (
		words   []model.TextToken
		current strings.Builder
		word    model.TextToken
		prev    glyph
		open    bool
	)

	flush := func() {
		if open {
			word.Text = NormalizeText(current.String())
			if word.Text != "" {
				words = append(words, word)
			}
		}
		current.Reset()
		open = false
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.text, unicode.IsSpace) == "" {
			flush()
			continue
		}

		size := g.fontSize
		if size <= 0 {
			size = fallbackSize
		}
		top := pageHeight - (g.y + size*ascentRatio)
		box := model.TextToken{
			Left:     g.x,
			Top:      top,
			Right:    g.x + math.Max(g.width, 0),
			Bottom:   top + size,
			FontSize: g.fontSize,
		}

		if open && !continuesWord(prev, g, size) {
			flush()
		}

		if !open {
			word = box
			open = true
		} else {
			word.Left = math.Min(word.Left, box.Left)
			word.Top = math.Min(word.Top, box.Top)
			word.Right = math.Max(word.Right, box.Right)
			word.Bottom = math.Max(word.Bottom, box.Bottom)
		}
		current.WriteString(g.text)
		prev = g

		// A run ending in whitespace closes the word after it.
		if last := g.text[len(g.text)-1]; last == ' ' || last == '\t' {
			flush()
		}
	}
	flush()

	return words
}

// continuesWord reports whether next directly follows prev on the same line.
func continuesWord(prev, next glyph, size float64) bool {
	if math.Abs(next.y-prev.y) > size*0.5 {
		return false
	}
	gap := next.x - (prev.x + prev.width)
	if gap < -size*0.5 {
		return false
	}
	return gap < size*spaceWidthRatio*0.5
}

// Ruling extraction limits, in page units
const (
	maxRulingThickness = 2.0
	minRulingLength    = 5.0
)

// rulingsFromRects keeps the thin rectangles that draw table lines and
// converts them to rulings in top-left page coordinates.
func rulingsFromRects(rects []rect, pageHeight float64) []model.Ruling {
	var rulings []model.Ruling
	for _, r := range rects {
		minX, maxX := math.Min(r.minX, r.maxX), math.Max(r.minX, r.maxX)
		minY, maxY := math.Min(r.minY, r.maxY), math.Max(r.minY, r.maxY)
		width, height := maxX-minX, maxY-minY

		switch {
		case height <= maxRulingThickness && width >= minRulingLength:
			rulings = append(rulings, model.Ruling{
				Orientation: model.Horizontal,
				Position:    pageHeight - (minY+maxY)/2,
				Start:       minX,
				End:         maxX,
			})
		case width <= maxRulingThickness && height >= minRulingLength:
			rulings = append(rulings, model.Ruling{
				Orientation: model.Vertical,
				Position:    (minX + maxX) / 2,
				Start:       pageHeight - maxY,
				End:         pageHeight - minY,
			})
		}
	}
	return rulings
}
