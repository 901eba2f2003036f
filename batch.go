package tabextract

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch runs independent extractions in parallel, at most limit at a time
// (limit <= 0 means no limit). Results and warnings keep the order of the
// extractors. The first failure cancels the extractions still pending and is
// returned.
//
// Example:
//
//	base := tabextract.Open("statement.pdf").UseLines()
//	results, warnings, err := tabextract.Batch(ctx, []*tabextract.Extractor{
//	    base.Page(1), base.Page(2), base.Page(3),
//	}, 2)
func Batch(ctx context.Context, extractors []*Extractor, limit int) ([]*Result, []Warning, error) {
	results := make([]*Result, len(extractors))
	perRun := make([][]Warning, len(extractors))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, ext := range extractors {
		i, ext := i, ext
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, warnings, err := ext.Context(gctx).Result()
			if err != nil {
				return fmt.Errorf("extraction %d: %w", i, err)
			}
			results[i] = res
			perRun[i] = warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for _, w := range perRun {
		warnings = append(warnings, w...)
	}
	return results, warnings, nil
}
