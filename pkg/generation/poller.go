package generation

import (
	"StyleShot-Backend/domain"
	"context"
	"errors"
	"time"
)

var ErrPollTimeout = errors.New("generation polling timed out")

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 3 * time.Minute
)

type (
	// StatusFetcher issues one status request. Pure request/response; the
	// poller holds no server-side resource between calls.
	StatusFetcher func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error)

	PollOptions struct {
		Interval time.Duration
		Timeout  time.Duration
	}
)

// PollStatus queries on a fixed interval until the generation reaches a
// terminal state, the timeout window elapses, or ctx is cancelled. A
// transient fetch error does not abort the loop; a generation that never
// terminates within the window surfaces as ErrPollTimeout and must be
// treated as failed by the caller.
func PollStatus(ctx context.Context, fetch StatusFetcher, generationID string, opts PollOptions) (*domain.GenerationStatusResponse, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPollTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		status, err := fetch(ctx, generationID)
		if err == nil && isTerminal(status.Status) {
			return status, nil
		}
		if err != nil && errors.Is(err, domain.ErrGenerationNotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrPollTimeout
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func isTerminal(status string) bool {
	return status == domain.GenerationStatusCompleted || status == domain.GenerationStatusFailed
}
