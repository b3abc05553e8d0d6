package worklog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the number of concurrent extraction calls.
const batchConcurrency = 4

// Document is an external text source, such as an imported document, whose
// skills should be recorded without creating a work log entry.
type Document struct {
	ID        string
	Content   string
	Timestamp time.Time
}

// BatchResult reports the outcome of extracting one document.
type BatchResult struct {
	DocumentID string
	Skills     []string
	Err        error
}

// BatchExtract extracts and records skills from a set of external documents
// concurrently. Extraction failures are reported per document in the results
// rather than aborting the batch; the returned error covers only invalid
// input and context cancellation.
func (m *Manager) BatchExtract(ctx context.Context, documents []Document) ([]BatchResult, error) {
	results := make([]BatchResult, len(documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, doc := range documents {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.extractDocument(ctx, doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	m.log.Infow("batch extraction finished",
		"documents", len(documents), "succeeded", succeeded)
	return results, nil
}

func (m *Manager) extractDocument(ctx context.Context, doc Document) BatchResult {
	result := BatchResult{DocumentID: doc.ID}

	if strings.TrimSpace(doc.ID) == "" {
		result.Err = fmt.Errorf("document id is empty")
		return result
	}

	detected, err := m.extractor.ExtractSkills(ctx, doc.Content)
	if err != nil {
		result.Err = fmt.Errorf("extraction failed for document %s: %w", doc.ID, err)
		return result
	}

	detectedAt := doc.Timestamp
	if detectedAt.IsZero() {
		detectedAt = m.now().UTC()
	}

	result.Skills = m.recordDetections(ctx, detected, doc.ID, detectedAt)
	return result
}
