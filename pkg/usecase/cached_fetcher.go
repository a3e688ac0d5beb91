package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/secmon-lab/vantagepoint/pkg/utils/metrics"
	"golang.org/x/sync/singleflight"
)

// cachedFetcher memoizes successful fetches in a ResultCache. Concurrent
// misses on the same key share one upstream request, which is detached from
// any single caller's cancellation. A result that lands after an invalidation
// of its source is returned but not stored. Errors are not cached.
type cachedFetcher struct {
	fetcher interfaces.EventFetcher
	cache   interfaces.ResultCache
	group   singleflight.Group
}

var _ interfaces.EventFetcher = (*cachedFetcher)(nil)

func newCachedFetcher(fetcher interfaces.EventFetcher, cache interfaces.ResultCache) *cachedFetcher {
	return &cachedFetcher{fetcher: fetcher, cache: cache}
}

func (f *cachedFetcher) Source() types.SourceID {
	return f.fetcher.Source()
}

func (f *cachedFetcher) Fetch(ctx context.Context, q model.FetchQuery) ([]*model.Event, error) {
	key := q.CacheKey(f.fetcher.Source())

	if entry, ok := f.cache.Get(key); ok {
		metrics.ObserveCacheLookup(key.Source.String(), true)
		return entry.Events, nil
	}
	metrics.ObserveCacheLookup(key.Source.String(), false)

	gen := f.cache.Generation(key.Source)
	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(flightKey(key, gen), func() (any, error) {
		events, err := f.fetcher.Fetch(flightCtx, q)
		if err != nil {
			return nil, err
		}
		entry, stored := f.cache.PutIfCurrent(key, events, gen)
		if !stored {
			logging.From(flightCtx).Debug("Discarded fetch result invalidated while in flight",
				slog.String("source", key.Source.String()))
		}
		return entry.Events, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// the shared result may be handed to several callers
		return model.CloneEvents(res.Val.([]*model.Event)), nil
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "fetch abandoned", goerr.V(model.SourceKey, key.Source))
	}
}

// flightKey includes the generation so callers arriving after an
// invalidation never join a flight started before it
func flightKey(key model.CacheKey, gen uint64) string {
	return key.Source.String() + "\x00" + key.Query + "\x00" + strconv.Itoa(key.Limit) + "\x00" + strconv.FormatUint(gen, 10)
}
