package model

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is returned when a token violates the coordinate invariants.
var ErrInvalidToken = errors.New("invalid text token")

// TextToken is one unit of extracted text with its bounding box in page
// coordinates (origin top-left, Y increasing downward).
type TextToken struct {
	Text   string  `json:"text" yaml:"text"`
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`

	// FontSize is 0 when the extractor could not determine it.
	FontSize float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
}

// NewTextToken creates a token from its edges.
func NewTextToken(text string, left, top, right, bottom float64) TextToken {
	return TextToken{Text: text, Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent
func (t TextToken) Width() float64 { return t.Right - t.Left }

// Height returns the vertical extent
func (t TextToken) Height() float64 { return t.Bottom - t.Top }

// CenterX returns the horizontal center
func (t TextToken) CenterX() float64 { return (t.Left + t.Right) / 2 }

// CenterY returns the vertical center
func (t TextToken) CenterY() float64 { return (t.Top + t.Bottom) / 2 }

// BBox returns the token's bounding box
func (t TextToken) BBox() BBox {
	return BBox{X: t.Left, Y: t.Top, Width: t.Width(), Height: t.Height()}
}

// Validate checks that the edges are finite and ordered.
func (t TextToken) Validate() error {
	for _, v := range []float64{t.Left, t.Top, t.Right, t.Bottom, t.FontSize} {
		if !isFinite(v) {
			return fmt.Errorf("%w: %q has non-finite coordinate", ErrInvalidToken, t.Text)
		}
	}
	if t.Left > t.Right {
		return fmt.Errorf("%w: %q has left %.2f > right %.2f", ErrInvalidToken, t.Text, t.Left, t.Right)
	}
	if t.Top > t.Bottom {
		return fmt.Errorf("%w: %q has top %.2f > bottom %.2f", ErrInvalidToken, t.Text, t.Top, t.Bottom)
	}
	if t.FontSize < 0 {
		return fmt.Errorf("%w: %q has negative font size", ErrInvalidToken, t.Text)
	}
	return nil
}

// ValidateTokens validates every token and reports the first violation with
// its index.
func ValidateTokens(tokens []TextToken) error {
	for i, t := range tokens {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
	}
	return nil
}

// TokensBBox returns the union of all token boxes, or an empty box when there
// are no tokens.
func TokensBBox(tokens []TextToken) BBox {
	if len(tokens) == 0 {
		return BBox{}
	}
	bbox := tokens[0].BBox()
	for _, t := range tokens[1:] {
		bbox = bbox.Union(t.BBox())
	}
	return bbox
}
