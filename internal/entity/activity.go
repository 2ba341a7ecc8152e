package entity

// Activity is one signup offering as reported by the backend. Name is the
// unique key; Participants keeps the server-reported order and is not
// deduplicated locally.
type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft is derived, never stored.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}
