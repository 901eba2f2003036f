// Package tables reconstructs a table grid from positioned text tokens.
//
// The engine runs in three stages:
//
//  1. [SegmentRows] groups tokens into horizontal bands
//  2. [SegmentColumns] finds column bands across all rows at once
//  3. [Assemble] places each token into its (row, column) cell
//
// [Reconstruct] runs all three:
//
//	table, err := tables.Reconstruct(tokens, tables.Infer(), tables.Infer(), tables.DefaultConfig())
//
// # Strategies
//
// Each axis takes a [Strategy]. [Infer] clusters token positions;
// [UseRulings] places boundaries at ruling line positions, which then take
// precedence over any clustering:
//
//	lines := tables.UseRulings(rulings)
//	table, err := tables.Reconstruct(tokens, lines, lines, cfg)
//
// # Configuration
//
// Thresholds are passed explicitly through [Config]; there is no package
// state. Options include:
//
//   - RowGapFactor, MinRowGap - row split threshold from the median token height
//   - ColumnProximityFactor, CharWidthRatio, DefaultCharWidth - column merge threshold
//   - RulingEpsilon - deduplication distance for ruling positions
//   - TieEpsilon - boundary ties resolve to the lower band
//   - MergeWords, WordGapFactor - opt-in phrase continuation handling
//
// # Concurrency
//
// All functions are pure. Tokens and rulings are never modified, and
// concurrent calls share nothing.
package tables
