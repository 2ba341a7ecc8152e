package service

import (
	"github.com/mergington/activities-board/internal/entity"
)

// ActivityCard is one rendered activity. Count is tracked explicitly and is
// always len(Participants); the display never derives it by parsing rendered
// text back out.
type ActivityCard struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Count           int
	Participants    []string
}

func (c *ActivityCard) SpotsLeft() int {
	return c.MaxParticipants - c.Count
}

// BoardView is the explicit view state for one board session. Handlers only
// ever see copies of it; all mutation goes through the service.
type BoardView struct {
	Cards   []ActivityCard
	Options []string

	// Message is the transient message area; nil means hidden.
	Message *entity.Message

	// Alert is a one-shot failure dialog, consumed by the next render.
	Alert string

	// LoadFailed replaces the whole card list with a static failure notice.
	LoadFailed bool

	// Form state, retained across a failed signup and cleared on success.
	FormEmail    string
	FormActivity string
}

func (v *BoardView) clone() *BoardView {
	out := &BoardView{
		Options:      append([]string(nil), v.Options...),
		Alert:        v.Alert,
		LoadFailed:   v.LoadFailed,
		FormEmail:    v.FormEmail,
		FormActivity: v.FormActivity,
	}
	if v.Message != nil {
		msg := *v.Message
		out.Message = &msg
	}
	for _, card := range v.Cards {
		copied := card
		copied.Participants = append([]string(nil), card.Participants...)
		out.Cards = append(out.Cards, copied)
	}
	return out
}
