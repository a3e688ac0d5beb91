package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/service/worker"
)

type countingAcquirer struct {
	calls atomic.Int32
}

func (a *countingAcquirer) LiveEvents(ctx context.Context) *model.Acquisition {
	a.calls.Add(1)
	return &model.Acquisition{Events: []*model.Event{}, Notices: []model.Notice{}}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCacheWarmer(t *testing.T) {
	t.Run("warms immediately and on every tick", func(t *testing.T) {
		acq := &countingAcquirer{}
		w := worker.NewCacheWarmer(acq, 10*time.Millisecond)
		w.Start(t.Context())

		waitFor(t, func() bool { return acq.calls.Load() >= 3 })
		w.Stop()

		stopped := acq.calls.Load()
		time.Sleep(30 * time.Millisecond)
		gt.Value(t, acq.calls.Load()).Equal(stopped)
	})

	t.Run("initial warm does not wait for the interval", func(t *testing.T) {
		acq := &countingAcquirer{}
		w := worker.NewCacheWarmer(acq, time.Hour)
		w.Start(t.Context())

		waitFor(t, func() bool { return acq.calls.Load() == 1 })
		w.Stop()
	})

	t.Run("context cancellation ends the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		acq := &countingAcquirer{}
		w := worker.NewCacheWarmer(acq, time.Hour)
		w.Start(ctx)

		waitFor(t, func() bool { return acq.calls.Load() == 1 })
		cancel()
		w.Stop()
		w.Stop()
	})
}
