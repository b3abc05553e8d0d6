// Package search provides full-text search over work log entries, used to
// assemble the candidate pool for resume generation.
package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// indexDoc is the shape stored in the index for each work log entry.
type indexDoc struct {
	Content   string    `json:"content"`
	Skills    []string  `json:"skills"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Index is a Bleve-backed full-text index over work log entries.
type Index struct {
	index bleve.Index
}

func buildMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so skill names
	// like "Kubernetes" match exactly as typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("skills", textFieldMapping)

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("user_id", keywordFieldMapping)

	dateFieldMapping := bleve.NewDateTimeFieldMapping()
	docMapping.AddFieldMappingsAt("timestamp", dateFieldMapping)

	im.DefaultMapping = docMapping
	return im
}

// NewIndex creates or opens a Bleve index at path. An existing index is
// opened and reused; remove the directory to force a full re-index after a
// mapping change.
func NewIndex(path string) (*Index, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open search index: %w", openErr)
		}
		return &Index{index: index}, nil
	}

	index, err := bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: index}, nil
}

// NewMemoryIndex creates an in-memory index with no on-disk state.
func NewMemoryIndex() (*Index, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{index: index}, nil
}

// IndexEntry adds or replaces a work log entry in the index.
func (ix *Index) IndexEntry(_ context.Context, entry *types.WorkLogEntry) error {
	doc := indexDoc{
		Content:   entry.Content,
		Skills:    entry.ExtractedSkills,
		UserID:    entry.UserID,
		Timestamp: entry.Timestamp,
	}
	if err := ix.index.Index(entry.ID, doc); err != nil {
		return fmt.Errorf("failed to index entry %s: %w", entry.ID, err)
	}
	return nil
}

// Delete removes an entry from the index. Deleting an unknown id is not an
// error.
func (ix *Index) Delete(_ context.Context, id string) error {
	if err := ix.index.Delete(id); err != nil {
		return fmt.Errorf("failed to remove entry %s from index: %w", id, err)
	}
	return nil
}

// Search runs a match query over content and skills and returns up to limit
// candidates. Scores are normalized to [0, 1] relative to the best hit so the
// ranker receives comparable base relevance values across queries.
func (ix *Index) Search(_ context.Context, query string, limit int) ([]types.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"content", "skills", "user_id", "timestamp"}

	results, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	maxScore := 0.0
	for _, hit := range results.Hits {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}

	candidates := make([]types.Candidate, 0, len(results.Hits))
	for _, hit := range results.Hits {
		c := types.Candidate{
			ID:     hit.ID,
			Source: "worklog",
		}
		if maxScore > 0 {
			c.BaseRelevance = hit.Score / maxScore
		}
		if content, ok := hit.Fields["content"].(string); ok {
			c.Content = content
		}
		c.Skills = fieldStrings(hit.Fields["skills"])
		if ts, ok := hit.Fields["timestamp"].(string); ok {
			if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
				c.Timestamp = parsed
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Close releases the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}

// fieldStrings handles Bleve returning a stored array field as either a
// single value or a slice depending on cardinality.
func fieldStrings(field any) []string {
	switch v := field.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
