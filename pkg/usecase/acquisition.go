package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/secmon-lab/vantagepoint/pkg/utils/metrics"
)

// User-visible notices
const (
	NoticePrimaryRateLimited = "GDELT rate limit (429 Too Many Requests). Use synthetic data for now, or try again in 10-15 minutes."
	NoticeUsingPrimary       = "Using GDELT live news."
	NoticeUsingSecondary     = "Using NewsAPI (GDELT was empty or rate-limited)."
	NoticeUsingTertiary      = "Using RSS feeds (GDELT/NewsAPI unavailable)."
	NoticeSyntheticFallback  = "No live source returned events. Showing synthetic data."
)

// Fetch outcomes recorded in metrics
const (
	outcomeOK          = "ok"
	outcomeEmpty       = "empty"
	outcomeRateLimited = "rate_limited"
	outcomeError       = "error"
)

// AcquisitionUseCase tries the live sources in strict priority order and
// falls back to the synthetic catalog
type AcquisitionUseCase struct {
	cache     interfaces.ResultCache
	synthetic interfaces.SyntheticGenerator
	// sources in priority order; nil entries are skipped
	sources []interfaces.EventFetcher

	memoMu sync.Mutex
	memo   []*model.Event
}

// NewAcquisitionUseCase wires the sources. The primary and secondary sources
// are memoized in cache; the tertiary source is always read fresh. Pass a nil
// secondary when its API key is not configured.
func NewAcquisitionUseCase(cache interfaces.ResultCache, gen interfaces.SyntheticGenerator, primary, secondary, tertiary interfaces.EventFetcher) *AcquisitionUseCase {
	uc := &AcquisitionUseCase{
		cache:     cache,
		synthetic: gen,
	}
	if primary != nil {
		uc.sources = append(uc.sources, newCachedFetcher(primary, cache))
	}
	if secondary != nil {
		uc.sources = append(uc.sources, newCachedFetcher(secondary, cache))
	}
	if tertiary != nil {
		uc.sources = append(uc.sources, tertiary)
	}
	return uc
}

// LiveEvents returns the events of the first live source that yields any.
// Results are never merged. When every source is empty the returned
// acquisition has no source and no events. It never fails; problems are
// reported as notices.
func (uc *AcquisitionUseCase) LiveEvents(ctx context.Context) *model.Acquisition {
	acq := &model.Acquisition{Events: []*model.Event{}, Notices: []model.Notice{}}

	for _, src := range uc.sources {
		events := uc.fetchSource(ctx, src, acq)
		if len(events) == 0 {
			continue
		}

		acq.Source = src.Source()
		acq.Events = events
		acq.AddNotice(model.NoticeInfo, acq.Source, usingNotice(acq.Source))
		break
	}

	metrics.ObserveAcquisition(acq.Source.String())
	logging.From(ctx).Info("Live acquisition finished",
		slog.String("source", acq.Source.String()),
		slog.Int("events", len(acq.Events)),
		slog.Int("notices", len(acq.Notices)),
	)
	return acq
}

// SyntheticEvents returns the demo catalog. Timestamps are fixed at the first
// call and kept until Refresh clears the memo. Callers get their own copy.
func (uc *AcquisitionUseCase) SyntheticEvents(ctx context.Context) []*model.Event {
	uc.memoMu.Lock()
	defer uc.memoMu.Unlock()

	if uc.memo == nil {
		uc.memo = uc.synthetic.Generate()
		logging.From(ctx).Debug("Generated synthetic catalog", slog.Int("events", len(uc.memo)))
	}
	return model.CloneEvents(uc.memo)
}

// Events is the caller-facing entry point. In live mode it substitutes
// synthetic data with a warning when every live source is exhausted.
func (uc *AcquisitionUseCase) Events(ctx context.Context, mode types.DataMode) *model.Acquisition {
	if mode != types.DataModeLive {
		return &model.Acquisition{
			Source:  types.SourceSynthetic,
			Events:  uc.SyntheticEvents(ctx),
			Notices: []model.Notice{},
		}
	}

	acq := uc.LiveEvents(ctx)
	if !acq.Empty() {
		return acq
	}

	acq.Source = types.SourceSynthetic
	acq.Events = uc.SyntheticEvents(ctx)
	acq.Fallback = true
	acq.AddNotice(model.NoticeWarning, types.SourceSynthetic, NoticeSyntheticFallback)
	return acq
}

// Refresh evicts every memoized live fetch regardless of age. The synthetic
// memo is cleared only when includeSynthetic is set, i.e. in synthetic mode.
func (uc *AcquisitionUseCase) Refresh(ctx context.Context, includeSynthetic bool) {
	uc.cache.Invalidate(types.SourceGDELT)
	uc.cache.Invalidate(types.SourceNewsAPI)
	metrics.ObserveInvalidation()

	if includeSynthetic {
		uc.memoMu.Lock()
		uc.memo = nil
		uc.memoMu.Unlock()
	}

	logging.From(ctx).Info("Caches refreshed", slog.Bool("synthetic", includeSynthetic))
}

// fetchSource runs one source and turns any error into a notice and an empty result
func (uc *AcquisitionUseCase) fetchSource(ctx context.Context, src interfaces.EventFetcher, acq *model.Acquisition) []*model.Event {
	source := src.Source()
	logger := logging.From(ctx).With(slog.String("source", source.String()))

	events, err := src.Fetch(ctx, model.FetchQuery{})
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, model.ErrRateLimited) {
			outcome = outcomeRateLimited
		}
		metrics.ObserveFetch(source.String(), outcome, 0)
		acq.AddNotice(model.NoticeWarning, source, failureNotice(source, err))

		attrs := []any{slog.Any("error", err)}
		var ge *goerr.Error
		if errors.As(err, &ge) {
			attrs = append(attrs, slog.Any("values", ge.Values()))
		}
		logger.Warn("Source fetch failed", attrs...)
		return nil
	}

	if len(events) == 0 {
		metrics.ObserveFetch(source.String(), outcomeEmpty, 0)
		logger.Debug("Source returned no events")
		return nil
	}

	metrics.ObserveFetch(source.String(), outcomeOK, len(events))
	return events
}

func usingNotice(source types.SourceID) string {
	switch source {
	case types.SourceGDELT:
		return NoticeUsingPrimary
	case types.SourceNewsAPI:
		return NoticeUsingSecondary
	case types.SourceRSS:
		return NoticeUsingTertiary
	default:
		return "Using " + source.DisplayName() + "."
	}
}

func failureNotice(source types.SourceID, err error) string {
	name := source.DisplayName()
	if errors.Is(err, model.ErrRateLimited) {
		if source == types.SourceGDELT {
			return NoticePrimaryRateLimited
		}
		return name + " rate limit (429 Too Many Requests)."
	}
	if errors.Is(err, model.ErrMissingCredential) {
		return name + " is not configured."
	}
	return name + " unreachable: " + err.Error()
}
