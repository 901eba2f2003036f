package model

import "fmt"

// Orientation is the direction of a ruling line
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the orientation as its name
func (o Orientation) MarshalText() ([]byte, error) {
	if o != Horizontal && o != Vertical {
		return nil, fmt.Errorf("unknown orientation %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts "horizontal"/"h" and "vertical"/"v"
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal", "h":
		*o = Horizontal
	case "vertical", "v":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Ruling is a detected straight line segment in page space. Position is the
// constant coordinate (Y for horizontal, X for vertical); Start and End give
// the extent along the other axis.
type Ruling struct {
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	Position    float64     `json:"position" yaml:"position"`
	Start       float64     `json:"start" yaml:"start"`
	End         float64     `json:"end" yaml:"end"`
}

// Length returns the extent of the ruling. A single-point ruling has length 0.
func (r Ruling) Length() float64 {
	return r.End - r.Start
}

// IsHorizontal reports whether the ruling runs along the X axis
func (r Ruling) IsHorizontal() bool { return r.Orientation == Horizontal }

// IsVertical reports whether the ruling runs along the Y axis
func (r Ruling) IsVertical() bool { return r.Orientation == Vertical }

// HorizontalRulings returns the horizontal rulings in their original order
func HorizontalRulings(rulings []Ruling) []Ruling {
	return filterRulings(rulings, Horizontal)
}

// VerticalRulings returns the vertical rulings in their original order
func VerticalRulings(rulings []Ruling) []Ruling {
	return filterRulings(rulings, Vertical)
}

func filterRulings(rulings []Ruling, o Orientation) []Ruling {
	var result []Ruling
	for _, r := range rulings {
		if r.Orientation == o {
			result = append(result, r)
		}
	}
	return result
}
