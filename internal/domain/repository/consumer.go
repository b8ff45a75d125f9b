package repository

import (
	"context"
)

// Consumer is a long-running background worker. Start blocks until the
// context is cancelled or Stop is called; both halt the loop after the
// current iteration.
type Consumer interface {
	Start(ctx context.Context) error
	Stop()
}
