package generation

import (
	"StyleShot-Backend/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollStatusStopsOnTerminalState(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error) {
		calls++
		status := domain.GenerationStatusProcessing
		if calls >= 3 {
			status = domain.GenerationStatusCompleted
		}
		return &domain.GenerationStatusResponse{GenerationID: generationID, Status: status}, nil
	}

	status, err := PollStatus(context.Background(), fetch, "gen-1", PollOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, domain.GenerationStatusCompleted, status.Status)
	require.Equal(t, 3, calls)
}

func TestPollStatusTimesOut(t *testing.T) {
	fetch := func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error) {
		return &domain.GenerationStatusResponse{GenerationID: generationID, Status: domain.GenerationStatusProcessing}, nil
	}

	_, err := PollStatus(context.Background(), fetch, "gen-1", PollOptions{
		Interval: time.Millisecond,
		Timeout:  20 * time.Millisecond,
	})
	require.ErrorIs(t, err, ErrPollTimeout)
}

func TestPollStatusHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetch := func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error) {
		return &domain.GenerationStatusResponse{GenerationID: generationID, Status: domain.GenerationStatusProcessing}, nil
	}

	_, err := PollStatus(ctx, fetch, "gen-1", PollOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPollStatusSurfacesFailedGeneration(t *testing.T) {
	fetch := func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error) {
		return &domain.GenerationStatusResponse{GenerationID: generationID, Status: domain.GenerationStatusFailed}, nil
	}

	status, err := PollStatus(context.Background(), fetch, "gen-1", PollOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, domain.GenerationStatusFailed, status.Status)
}

func TestPollStatusStopsOnNotFound(t *testing.T) {
	fetch := func(ctx context.Context, generationID string) (*domain.GenerationStatusResponse, error) {
		return nil, domain.ErrGenerationNotFound
	}

	_, err := PollStatus(context.Background(), fetch, "gen-1", PollOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.ErrorIs(t, err, domain.ErrGenerationNotFound)
}
