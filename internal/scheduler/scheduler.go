package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task in a loop until ctx is cancelled. The interval is
// re-evaluated before each wait, so a config change takes effect on the
// next cycle without restarting the loop.
func Every(ctx context.Context, interval func() time.Duration, name string, task Task) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval()):
		}

		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}
}
