// Package source supplies the engine's inputs: text tokens for a page region
// and, optionally, ruling lines in page space.
//
// Two sources are provided. A [Document] is a JSON token document produced
// by an external extractor and checked against a JSON Schema before use. A
// [PDFFile] reads the text layer of a PDF directly, merging glyphs into word
// tokens and turning thin vector rectangles into rulings.
//
//	src, err := source.Open("invoice.pdf", logger)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	tokens, err := src.Tokens(ctx, source.NewRegion(1, 40, 100, 560, 400))
//
// Rulings detected on a rendered page image are in raster pixels. Convert
// them with [RasterScale] and [NormalizeRulings] before they reach the
// engine:
//
//	scale, err := source.RasterScale(pageWidth, source.DefaultRasterWidth)
//	rulings, err := source.NormalizeRulings(raw, scale)
package source
