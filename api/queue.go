package api

import "context"

// TaskQueue is the slice of the background worker pool the handlers need.
type TaskQueue interface {
	Enqueue(ctx context.Context, typ string, payload any, priority int, maxAttempts int) (int64, error)
}
