package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fetcherFunc func(ctx context.Context) (Result, error)

func (f fetcherFunc) GetMembershipData(ctx context.Context) (Result, error) { return f(ctx) }

func TestRefresher_FetchesImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	fetch := fetcherFunc(func(context.Context) (Result, error) {
		calls.Add(1)
		return Result{Source: SourceLive}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewRefresher(fetch, 10*time.Millisecond, nil).Run(ctx)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 },
		2*time.Second, 5*time.Millisecond, "expected the immediate fetch plus ticks")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop on context cancellation")
	}
}
