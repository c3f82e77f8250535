package terminal

import (
	"context"
	"time"
)

// Bounds for the auto-refresh cadence.
const (
	MinLiveInterval = 2 * time.Second
	MaxLiveInterval = time.Minute
)

func ClampLiveInterval(every time.Duration) time.Duration {
	if every < MinLiveInterval {
		return MinLiveInterval
	}
	if every > MaxLiveInterval {
		return MaxLiveInterval
	}
	return every
}

// Live runs the auto-refresh loop: refresh the series, hand the session to
// onCycle, sleep, repeat. The first cycle runs immediately. Each cycle is a
// complete read-only pass over provider data, so cancelling between (or
// during) cycles loses nothing; Live returns nil once ctx is done.
func (s *Session) Live(ctx context.Context, every time.Duration, onCycle func(s *Session, err error)) error {
	ticker := time.NewTicker(ClampLiveInterval(every))
	defer ticker.Stop()

	for {
		err := s.Refresh(ctx)
		if onCycle != nil {
			onCycle(s, err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
