// Package tasks runs the asynchronous pipeline steps: question generation,
// interview finalization, CV parsing and outbound notifications. Tasks are
// persisted rows polled by a worker pool, so an enqueued task survives a
// restart.
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/hireloop/pkg/models"
)

// Task type names, also the keys of the handler map.
const (
	TypeGenerateQuestions = "interview.generate_questions"
	TypeFinalizeInterview = "interview.finalize"
	TypeParseCV           = "candidate.parse_cv"
	TypeSendNotification  = "notify.send"
)

// Handler processes one task. A nil return marks the task done; an error
// schedules a retry until MaxAttempts, then the task moves to the dead-letter
// table.
type Handler func(ctx context.Context, t *models.Task) error

// ErrMaxAttempts indicates the task reached max attempts.
var ErrMaxAttempts = errors.New("max attempts reached")

// BackoffDuration returns exponential backoff duration for attempt n.
func BackoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	max := 5 * time.Minute
	if d > max {
		return max
	}
	return d
}
