package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/mergington/activities-board/internal/apiclient"
	"github.com/mergington/activities-board/internal/entity"
)

// Fallback texts shown when a failed mutation carries no usable detail.
const (
	signupFallback     = "Failed to sign up. Please try again."
	unregisterFallback = "Failed to unregister. Please try again."
)

// SignupRequest represents a submitted signup form.
type SignupRequest struct {
	Activity string `form:"activity" binding:"required"`
	Email    string `form:"email" binding:"required"`
}

// UnregisterRequest identifies one participant row on the board.
type UnregisterRequest struct {
	Activity string
	Email    string
}

// boardSession is one page load's worth of view state. The mutex is the Go
// analogue of the original single event-loop thread: every view mutation is
// serialized through it, while backend calls happen outside it so overlapping
// operations stay independently in flight.
type boardSession struct {
	id       uuid.UUID
	mu       sync.Mutex
	view     BoardView
	dismiss  clockwork.Timer
	lastSeen time.Time
}

type boardService struct {
	backend    Backend
	clock      clockwork.Clock
	messageTTL time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*boardSession
}

// NewBoardService creates a new instance of BoardService. messageTTL is how
// long a transient message stays visible before auto-dismissal.
func NewBoardService(backend Backend, clock clockwork.Clock, messageTTL time.Duration) BoardService {
	return &boardService{
		backend:    backend,
		clock:      clock,
		messageTTL: messageTTL,
		sessions:   make(map[uuid.UUID]*boardSession),
	}
}

func (s *boardService) CreateSession(ctx context.Context) uuid.UUID {
	view := s.fetchView(ctx)

	sess := &boardSession{
		id:       uuid.New(),
		view:     view,
		lastSeen: s.clock.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session_id": sess.id,
		"activities": len(view.Cards),
	}).Info("Board session created")

	return sess.id
}

func (s *boardService) Reload(ctx context.Context, id uuid.UUID) error {
	sess, ok := s.lookup(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	view := s.fetchView(ctx)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.dismiss != nil {
		sess.dismiss.Stop()
		sess.dismiss = nil
	}
	sess.view = view
	return nil
}

func (s *boardService) Snapshot(id uuid.UUID) (*BoardView, error) {
	sess, ok := s.lookup(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	view := sess.view.clone()
	// the alert dialog is shown exactly once
	sess.view.Alert = ""
	return view, nil
}

func (s *boardService) SubmitSignup(ctx context.Context, id uuid.UUID, req *SignupRequest) error {
	sess, ok := s.lookup(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	// Remember what was submitted so a failed attempt re-renders the form
	// exactly as the user left it.
	sess.mu.Lock()
	sess.view.FormActivity = req.Activity
	sess.view.FormEmail = req.Email
	sess.mu.Unlock()

	message, err := s.backend.Signup(ctx, req.Activity, req.Email)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"session_id": id,
			"activity":   req.Activity,
			"email":      req.Email,
		}).Errorf("Signup failed: %v", err)
		s.showMessageLocked(sess, detailOrFallback(err, signupFallback), entity.MessageError)
		return nil
	}

	sess.view.FormActivity = ""
	sess.view.FormEmail = ""
	s.showMessageLocked(sess, message, entity.MessageSuccess)
	// The roster is not re-fetched here; the new participant shows up on the
	// next board load.
	return nil
}

func (s *boardService) RemoveParticipant(ctx context.Context, id uuid.UUID, req *UnregisterRequest) error {
	sess, ok := s.lookup(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	err := s.backend.Unregister(ctx, req.Activity, req.Email)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"session_id": id,
			"activity":   req.Activity,
			"email":      req.Email,
		}).Errorf("Unregister failed: %v", err)
		sess.view.Alert = detailOrFallback(err, unregisterFallback)
		return nil
	}

	for i := range sess.view.Cards {
		card := &sess.view.Cards[i]
		if card.Name != req.Activity {
			continue
		}
		for j, participant := range card.Participants {
			if participant == req.Email {
				card.Participants = append(card.Participants[:j], card.Participants[j+1:]...)
				break
			}
		}
		card.Count = len(card.Participants)
		break
	}
	return nil
}

func (s *boardService) EvictIdleSessions(olderThan time.Duration) int {
	cutoff := s.clock.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		if idle && sess.dismiss != nil {
			sess.dismiss.Stop()
			sess.dismiss = nil
		}
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// fetchView builds a fresh view from the backend. The build is atomic: on
// any failure the view holds only the failure notice, never a partial card
// list or a partially filled dropdown.
func (s *boardService) fetchView(ctx context.Context) BoardView {
	activities, err := s.backend.ListActivities(ctx)
	if err != nil {
		logrus.Errorf("Failed to load activities: %v", err)
		return BoardView{LoadFailed: true}
	}

	var view BoardView
	for _, activity := range activities {
		participants := append([]string(nil), activity.Participants...)
		view.Cards = append(view.Cards, ActivityCard{
			Name:            activity.Name,
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			Count:           len(participants),
			Participants:    participants,
		})
		view.Options = append(view.Options, activity.Name)
	}
	return view
}

// showMessageLocked replaces the transient message and its dismissal timer.
// The previous timer is always stopped first, so a stale dismissal can never
// hide a newer message. Caller holds sess.mu.
func (s *boardService) showMessageLocked(sess *boardSession, text string, kind entity.MessageKind) {
	if sess.dismiss != nil {
		sess.dismiss.Stop()
	}

	shown := &entity.Message{Text: text, Kind: kind}
	sess.view.Message = shown
	sess.dismiss = s.clock.AfterFunc(s.messageTTL, func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.view.Message == shown {
			sess.view.Message = nil
			sess.dismiss = nil
		}
	})
}

func (s *boardService) lookup(id uuid.UUID) (*boardSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	sess.lastSeen = s.clock.Now()
	sess.mu.Unlock()
	return sess, true
}

// detailOrFallback prefers the backend's detail text for application-level
// failures; transport failures and empty bodies fall back to a generic text.
func detailOrFallback(err error, fallback string) string {
	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return statusErr.Detail
	}
	return fallback
}
