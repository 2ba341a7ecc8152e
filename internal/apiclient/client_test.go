package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities-board/internal/entity"
)

func TestListActivities(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected []entity.Activity
		wantErr  bool
	}{
		{
			name:   "single activity",
			status: http.StatusOK,
			body:   `{"Chess Club": {"description":"Weekly","schedule":"Fri 3pm","max_participants":10,"participants":["a@x.com"]}}`,
			expected: []entity.Activity{
				{Name: "Chess Club", Description: "Weekly", Schedule: "Fri 3pm", MaxParticipants: 10, Participants: []string{"a@x.com"}},
			},
		},
		{
			name:   "server order preserved",
			status: http.StatusOK,
			body: `{
				"Volleyball": {"description":"Team sport","schedule":"Mon 4pm","max_participants":12,"participants":[]},
				"Art Club": {"description":"Painting","schedule":"Tue 3pm","max_participants":15,"participants":["b@x.com","c@x.com"]},
				"Basketball": {"description":"Hoops","schedule":"Wed 5pm","max_participants":10,"participants":["d@x.com"]}
			}`,
			expected: []entity.Activity{
				{Name: "Volleyball", Description: "Team sport", Schedule: "Mon 4pm", MaxParticipants: 12, Participants: []string{}},
				{Name: "Art Club", Description: "Painting", Schedule: "Tue 3pm", MaxParticipants: 15, Participants: []string{"b@x.com", "c@x.com"}},
				{Name: "Basketball", Description: "Hoops", Schedule: "Wed 5pm", MaxParticipants: 10, Participants: []string{"d@x.com"}},
			},
		},
		{
			name:     "empty collection",
			status:   http.StatusOK,
			body:     `{}`,
			expected: nil,
		},
		{
			name:    "not a JSON object",
			status:  http.StatusOK,
			body:    `[1,2,3]`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"boom"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/activities", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0)
			activities, err := client.ListActivities(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, activities)
		})
	}
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantDetail string
		wantErr    bool
	}{
		{
			name:    "success",
			status:  http.StatusOK,
			body:    `{"message":"Signed up newstudent@mergington.edu for Chess Club"}`,
			wantMsg: "Signed up newstudent@mergington.edu for Chess Club",
		},
		{
			name:       "duplicate signup",
			status:     http.StatusBadRequest,
			body:       `{"detail":"Already signed up"}`,
			wantErr:    true,
			wantDetail: "Already signed up",
		},
		{
			name:       "unknown activity",
			status:     http.StatusNotFound,
			body:       `{"detail":"Activity not found"}`,
			wantErr:    true,
			wantDetail: "Activity not found",
		},
		{
			name:    "error without body",
			status:  http.StatusBadGateway,
			body:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/activities/Chess%20Club/signup", r.URL.EscapedPath())
				assert.Equal(t, "new@mergington.edu", r.URL.Query().Get("email"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0)
			msg, err := client.Signup(context.Background(), "Chess Club", "new@mergington.edu")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantMsg, msg)
				return
			}

			require.Error(t, err)
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
			assert.Equal(t, tt.wantDetail, statusErr.Detail)
		})
	}
}

func TestUnregister(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantErr    bool
	}{
		{
			name:   "success body ignored",
			status: http.StatusOK,
			body:   `{"message":"Removed a@x.com from Chess Club"}`,
		},
		{
			name:       "not registered",
			status:     http.StatusBadRequest,
			body:       `{"detail":"Student is not registered for this activity"}`,
			wantErr:    true,
			wantDetail: "Student is not registered for this activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/activities/Chess%20Club/unregister", r.URL.EscapedPath())
				assert.Equal(t, "a@x.com", r.URL.Query().Get("email"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0)
			err := client.Unregister(context.Background(), "Chess Club", "a@x.com")

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.wantDetail, statusErr.Detail)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, 0)

	_, err := client.ListActivities(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrBackendUnreachable))

	_, err = client.Signup(context.Background(), "Chess Club", "a@x.com")
	assert.True(t, errors.Is(err, entity.ErrBackendUnreachable))

	err = client.Unregister(context.Background(), "Chess Club", "a@x.com")
	assert.True(t, errors.Is(err, entity.ErrBackendUnreachable))
}
