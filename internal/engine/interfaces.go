package engine

import (
	"context"

	"github.com/mazerunner70/housef3/internal/model"
)

// Prompter defines the contract for collecting user decisions on surfaced
// candidates. Every candidate handed to ReviewCandidate must come back
// either confirmed or ignored; there is no third disposition.
type Prompter interface {
	ReviewCandidate(ctx context.Context, pending model.PendingReview) (model.ReviewDecision, error)
}
