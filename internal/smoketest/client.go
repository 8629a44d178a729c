package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// client wraps http.Client with the configured timeout and the URL
// shapes the API expects.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// listActivities fetches the full registry snapshot.
func (c *client) listActivities(ctx context.Context) (map[string]Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list returned status %d", resp.StatusCode)
	}

	var activities map[string]Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	return activities, nil
}

// signup issues POST /activities/{name}/signup and returns the status code
// with the decoded message or detail.
func (c *client) signup(ctx context.Context, activity, email string) (int, string, error) {
	return c.rosterCall(ctx, http.MethodPost, activity, "signup", email)
}

// unregister issues DELETE /activities/{name}/unregister.
func (c *client) unregister(ctx context.Context, activity, email string) (int, string, error) {
	return c.rosterCall(ctx, http.MethodDelete, activity, "unregister", email)
}

func (c *client) rosterCall(ctx context.Context, method, activity, op, email string) (int, string, error) {
	u := fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, url.PathEscape(activity), op, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%s request failed: %w", op, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return resp.StatusCode, "", err
	}

	if resp.StatusCode == http.StatusOK {
		var msg MessageResponse
		if err := json.Unmarshal(body, &msg); err != nil {
			return resp.StatusCode, "", fmt.Errorf("failed to decode message: %w", err)
		}
		return resp.StatusCode, msg.Message, nil
	}

	var detail DetailResponse
	if err := json.Unmarshal(body, &detail); err != nil {
		return resp.StatusCode, string(body), nil //nolint:nilerr // raw body is enough for diagnostics
	}
	return resp.StatusCode, detail.Detail, nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
