package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/activities-board/internal/entity"
)

// Backend is the slice of the activities API the board consumes.
type Backend interface {
	ListActivities(ctx context.Context) ([]entity.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) error
}

// BoardService keeps per-session view models in sync with the backend and
// relays the outcome of every mutating request into the view.
type BoardService interface {
	// Session lifecycle
	CreateSession(ctx context.Context) uuid.UUID
	Reload(ctx context.Context, id uuid.UUID) error
	Snapshot(id uuid.UUID) (*BoardView, error)

	// Mutating operations
	SubmitSignup(ctx context.Context, id uuid.UUID, req *SignupRequest) error
	RemoveParticipant(ctx context.Context, id uuid.UUID, req *UnregisterRequest) error

	// Maintenance
	EvictIdleSessions(olderThan time.Duration) int
}
