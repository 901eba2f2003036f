package tabextract

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal issue found during extraction.
type WarningKind int

const (
	// WarningNoRulings means ruling lines were requested but none were
	// found, so both axes fell back to inference.
	WarningNoRulings WarningKind = iota
	// WarningPartialRulings means rulings exist for one axis only.
	WarningPartialRulings
	// WarningEmptyRegion means the selected region contained no tokens.
	WarningEmptyRegion
	// WarningSparseTable means most cells of the result are empty, which
	// usually indicates the region is not a table or the thresholds are off.
	WarningSparseTable
)

// String returns a short name for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarningNoRulings:
		return "no-rulings"
	case WarningPartialRulings:
		return "partial-rulings"
	case WarningEmptyRegion:
		return "empty-region"
	case WarningSparseTable:
		return "sparse-table"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue: extraction succeeded but the result may
// not be what the caller expected.
type Warning struct {
	Kind    WarningKind
	Page    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s (%s)", w.Page, w.Message, w.Kind)
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// sparseOccupancy is the filled-cell ratio below which a table with more
// than one cell is reported as sparse.
const sparseOccupancy = 0.25
