package interfaces

import (
	"context"

	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// EventFetcher retrieves normalized events from one external source.
// Implementations return classified errors (model.ErrRateLimited,
// model.ErrSourceUnavailable); the acquisition use case turns them into
// notices so nothing reaches the caller as a hard failure.
type EventFetcher interface {
	Source() types.SourceID
	Fetch(ctx context.Context, query model.FetchQuery) ([]*model.Event, error)
}

// SyntheticGenerator produces the demo catalog used when live data is unavailable
type SyntheticGenerator interface {
	Generate() []*model.Event
}
