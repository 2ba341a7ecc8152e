package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotsLeft(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		expected int
	}{
		{
			name:     "open spots",
			activity: Activity{MaxParticipants: 10, Participants: []string{"a@x.com"}},
			expected: 9,
		},
		{
			name:     "empty roster",
			activity: Activity{MaxParticipants: 12},
			expected: 12,
		},
		{
			name:     "full activity",
			activity: Activity{MaxParticipants: 2, Participants: []string{"a@x.com", "b@x.com"}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.activity.SpotsLeft())
		})
	}
}
