package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

type fakeBoardService struct {
	sync.Mutex
	calls int
}

func (f *fakeBoardService) EvictIdleSessions(olderThan time.Duration) int {
	f.Lock()
	defer f.Unlock()
	f.calls++
	return 1
}

func (f *fakeBoardService) evictCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

func TestJanitorEvictsOnTicks(t *testing.T) {
	svc := &fakeBoardService{}
	clock := clockwork.NewFakeClock()
	janitor := NewSessionJanitor(svc, clock, time.Minute, 30*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go janitor.Start(ctx)

	clock.BlockUntil(1)
	clock.Advance(time.Minute)

	assert.Eventually(t, func() bool {
		return svc.evictCalls() >= 1
	}, time.Second, 10*time.Millisecond)
}
