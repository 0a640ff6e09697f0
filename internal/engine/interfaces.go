package engine

import (
	"context"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Orchestrator runs one message through the extraction pipeline. The
// batch processor depends on this interface so tests can substitute a
// counting or delaying implementation.
type Orchestrator interface {
	Process(ctx context.Context, msg model.RawMessage) model.ExtractionResult
}
