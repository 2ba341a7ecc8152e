package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// SessionEvicter is the slice of the board service the janitor needs.
type SessionEvicter interface {
	EvictIdleSessions(olderThan time.Duration) int
}

// SessionJanitor evicts board sessions that have not been touched for a
// while, so abandoned page loads do not pile up view models.
type SessionJanitor struct {
	boardService SessionEvicter
	clock        clockwork.Clock
	interval     time.Duration
	sessionTTL   time.Duration
}

func NewSessionJanitor(boardService SessionEvicter, clock clockwork.Clock, interval, sessionTTL time.Duration) *SessionJanitor {
	return &SessionJanitor{
		boardService: boardService,
		clock:        clock,
		interval:     interval,
		sessionTTL:   sessionTTL,
	}
}

func (w *SessionJanitor) Start(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Session janitor started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Session janitor stopped")
			return
		case <-ticker.Chan():
			w.evictIdleSessions()
		}
	}
}

func (w *SessionJanitor) evictIdleSessions() {
	evicted := w.boardService.EvictIdleSessions(w.sessionTTL)
	if evicted == 0 {
		return
	}
	logrus.Infof("Evicted %d idle board sessions", evicted)
}
