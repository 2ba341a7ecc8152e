// HTTP client for the activities backend. The backend is an opaque
// collaborator: this package only knows the three endpoints and their
// response shapes.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mergington/activities-board/internal/entity"
)

// StatusError is an application-level failure: the backend answered with a
// non-2xx status. Detail carries the body's "detail" field when present.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the backend at baseURL. A zero timeout
// leaves requests without a client-enforced deadline; they complete or fail
// according to the transport and the request context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListActivities fetches the full activity collection. The backend returns a
// JSON object keyed by activity name; key order is preserved so the board
// renders activities in the order the server reported them.
func (c *Client) ListActivities(ctx context.Context) ([]entity.Activity, error) {
	body, err := c.makeRequest(ctx, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	activities, err := decodeActivities(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

// Signup registers email for the named activity and returns the backend's
// confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	body, err := c.makeRequest(ctx, http.MethodPost, mutationPath(activity, "signup", email), nil)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode signup response: %w", err)
	}
	return resp.Message, nil
}

// Unregister removes email from the named activity's roster. Any 2xx counts
// as success; the body is ignored.
func (c *Client) Unregister(ctx context.Context, activity, email string) error {
	body, err := c.makeRequest(ctx, http.MethodDelete, mutationPath(activity, "unregister", email), nil)
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrBackendUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := extractDetail(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Status: resp.StatusCode, Detail: detail}
	}

	return resp.Body, nil
}

// mutationPath builds /activities/{name}/{op}?email={email} with the name
// escaped as a path segment and the email as a query value.
func mutationPath(activity, op, email string) string {
	q := url.Values{}
	q.Set("email", email)
	return "/activities/" + url.PathEscape(activity) + "/" + op + "?" + q.Encode()
}

// extractDetail pulls the "detail" field out of an error body. A missing or
// malformed body yields an empty string and the caller falls back to a
// generic text.
func extractDetail(r io.Reader) string {
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return ""
	}
	return resp.Detail
}

// decodeActivities walks the JSON object token by token instead of decoding
// into a map, so the server's key order survives.
func decodeActivities(r io.Reader) ([]entity.Activity, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var activities []entity.Activity
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected activity name, got %v", keyTok)
		}

		var body struct {
			Description     string   `json:"description"`
			Schedule        string   `json:"schedule"`
			MaxParticipants int      `json:"max_participants"`
			Participants    []string `json:"participants"`
		}
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode activity %q: %w", name, err)
		}

		activities = append(activities, entity.Activity{
			Name:            name,
			Description:     body.Description,
			Schedule:        body.Schedule,
			MaxParticipants: body.MaxParticipants,
			Participants:    body.Participants,
		})
	}

	return activities, nil
}
