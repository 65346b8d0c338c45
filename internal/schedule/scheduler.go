package schedule

import (
	"context"
	"time"
)

// Every runs f once per interval until ctx is canceled. The first run waits
// a full interval; callers wanting an immediate pass call f themselves.
func Every(ctx context.Context, interval time.Duration, f func()) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
		}
	}
}
