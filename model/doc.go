// Package model defines the values exchanged by the table reconstruction
// engine.
//
// # Inputs
//
// A [TextToken] is one positioned unit of text produced by a PDF text-layer
// extractor. A [Ruling] is a straight line segment produced by a line
// detector. Both use page coordinates with the origin at the top-left corner
// and Y increasing downward.
//
// # Intermediate values
//
// A [Band] is one row or column interval [Low, High). Its [BandSource] records
// whether the boundaries came from rulings or were inferred from token
// positions.
//
// # Output
//
// A [Table] is a rectangular, row-major grid of [Cell] values. Empty cells are
// explicit so every row has the same length:
//
//	for _, row := range table.Texts() {
//	    fmt.Println(strings.Join(row, " | "))
//	}
//
// # Geometry
//
//   - [BBox] - rectangle with intersection and union
//   - [Point] - 2D point with distance calculation
package model
