package model

// BandSource records how a band boundary was obtained
type BandSource int

const (
	SourceInferred BandSource = iota
	SourceRuling
)

func (s BandSource) String() string {
	if s == SourceRuling {
		return "ruling"
	}
	return "inferred"
}

// Band is one row or column interval [Low, High) along a single axis.
type Band struct {
	Low    float64    `yaml:"low"`
	High   float64    `yaml:"high"`
	Source BandSource `yaml:"-"`
}

// Size returns the extent of the band
func (b Band) Size() float64 {
	return b.High - b.Low
}

// Contains reports whether v lies in [Low, High)
func (b Band) Contains(v float64) bool {
	return v >= b.Low && v < b.High
}

// Center returns the midpoint of the band
func (b Band) Center() float64 {
	return (b.Low + b.High) / 2
}
