package worker

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
)

// LiveAcquirer is the acquisition step the warmer drives
type LiveAcquirer interface {
	LiveEvents(ctx context.Context) *model.Acquisition
}

// CacheWarmer re-runs live acquisition in the background so the memoized
// source results are populated before a request needs them. An interval at
// or above the result TTL refetches once per expiry; a cache hit costs no
// upstream request.
//
// Architecture assumptions:
// - Single server instance; warmers in other processes do not coordinate
type CacheWarmer struct {
	acquirer LiveAcquirer
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewCacheWarmer creates a new warmer
func NewCacheWarmer(acquirer LiveAcquirer, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		acquirer: acquirer,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background loop. The first acquisition runs immediately
// in the background and does not block server startup.
func (w *CacheWarmer) Start(ctx context.Context) {
	logging.Default().Info("Cache warmer starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *CacheWarmer) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Cache warmer stopping")
		close(w.stopCh)
	})
	<-w.doneCh
}

func (w *CacheWarmer) run(ctx context.Context) {
	defer close(w.doneCh)

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.warm(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Cache warmer context cancelled")
			return
		}
	}
}

// warm performs one acquisition. Failures are already notices on the result.
func (w *CacheWarmer) warm(ctx context.Context) {
	startTime := time.Now()
	acq := w.acquirer.LiveEvents(ctx)

	logging.Default().Debug("Cache warm completed",
		"source", acq.Source,
		"events", len(acq.Events),
		"notices", len(acq.Notices),
		"duration", time.Since(startTime).String())
}
