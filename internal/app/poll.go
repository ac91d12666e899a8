package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
)

// ErrRetriesExhausted is returned by Poller.Wait when the retry budget runs
// out while the job is still queued or running. The last fetched ack is
// returned alongside so callers can tell exhaustion apart from natural
// completion instead of inspecting the status string.
var ErrRetriesExhausted = errors.New("job status retries exhausted")

// StatusGetter is satisfied by persistence.JobRepo.
type StatusGetter interface {
	Status(ctx context.Context, id string) (*domain.JobAck, error)
}

// Poller waits for a job to leave the queued/running states. The policy is
// a fixed sleep interval with a bounded attempt count; there is no backoff
// and no server-side wait. Total wall time is bounded by
// MaxRetries * Interval plus the individual request durations.
type Poller struct {
	Interval   time.Duration
	MaxRetries int
	Log        zerolog.Logger
}

// Wait sleeps, fetches the status, and repeats until the status is terminal
// or the budget is exhausted. A terminal ack is returned with a nil error
// even when the terminal status is "failed"; deciding what a failed job
// means is the caller's concern.
func (p Poller) Wait(ctx context.Context, jobs StatusGetter, id string) (*domain.JobAck, error) {
	var last *domain.JobAck

	for attempt := 1; attempt <= p.MaxRetries; attempt++ {
		timer := time.NewTimer(p.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}

		ack, err := jobs.Status(ctx, id)
		if err != nil {
			return last, err
		}
		last = ack

		if ack.Status.Terminal() {
			p.Log.Info().Str("id", id).Str("status", string(ack.Status)).Int("attempts", attempt).Msg("job reached terminal status")
			return ack, nil
		}

		p.Log.Debug().Str("id", id).Str("status", string(ack.Status)).Int("attempt", attempt).Msg("job still in progress")
	}

	return last, errors.Wrapf(ErrRetriesExhausted, "job %s after %d attempts", id, p.MaxRetries)
}
