package resume

import (
	"context"

	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/types"
)

// History lists previously generated resumes, newest first.
func (g *Generator) History(ctx context.Context, filter store.ResumeFilter) ([]types.ResumeRecord, error) {
	return g.history.List(ctx, filter)
}

// Get returns a single resume from the history.
func (g *Generator) Get(ctx context.Context, id string) (*types.ResumeRecord, error) {
	return g.history.Get(ctx, id)
}

// Delete removes a resume from the history.
func (g *Generator) Delete(ctx context.Context, id string) error {
	return g.history.Delete(ctx, id)
}
