package service

import (
	"context"
	"time"

	"inventory_tracker/internal/repository"
)

// SessionSweeper periodically evicts expired session rows. Sweeping is
// an optimization only: Authenticate rejects expired tokens on its own,
// so a missed tick never extends a session.
type SessionSweeper struct {
	sessions repository.Sessions
}

func NewSessionSweeper(sessions repository.Sessions) *SessionSweeper {
	return &SessionSweeper{sessions: sessions}
}

var _ Sweeper = (*SessionSweeper)(nil)

// Run ticks at the given interval until ctx is canceled. A failed sweep
// is retried on the next tick.
func (s *SessionSweeper) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			_, _ = s.sessions.DeleteExpired(ctx, now.UTC())
		}
	}
}
