package model

// Page holds the extracted inputs for a single page: its size, its text
// tokens and any ruling lines detected on it.
type Page struct {
	Number  int     // 1-indexed page number
	Width   float64 // Page width in points
	Height  float64 // Page height in points
	Tokens  []TextToken
	Rulings []Ruling
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number:  number,
		Width:   width,
		Height:  height,
		Tokens:  make([]TextToken, 0),
		Rulings: make([]Ruling, 0),
	}
}

// AddToken appends a token to the page
func (p *Page) AddToken(t TextToken) {
	p.Tokens = append(p.Tokens, t)
}

// AddRuling appends a ruling to the page
func (p *Page) AddRuling(r Ruling) {
	p.Rulings = append(p.Rulings, r)
}

// BBox returns the full page rectangle
func (p *Page) BBox() BBox {
	return BBox{Width: p.Width, Height: p.Height}
}

// TokensInRegion returns the tokens intersecting the region, in extraction
// order. A nil region returns every token.
func (p *Page) TokensInRegion(region *BBox) []TextToken {
	if region == nil {
		return p.Tokens
	}
	var tokens []TextToken
	for _, t := range p.Tokens {
		if region.Intersects(t.BBox()) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
