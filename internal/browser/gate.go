package browser

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Gate caps the number of browser processes alive at once. Checks beyond the
// cap queue for a permit and give up after the configured wait.
type Gate struct {
	sem  *semaphore.Weighted
	wait time.Duration
}

func NewGate(size int64, wait time.Duration) *Gate {
	return &Gate{
		sem:  semaphore.NewWeighted(size),
		wait: wait,
	}
}

// Acquire blocks until a permit is free, the queue wait expires, or ctx is done
func (g *Gate) Acquire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.wait)
	defer cancel()
	return g.sem.Acquire(ctx, 1)
}

func (g *Gate) Release() {
	g.sem.Release(1)
}
