// Package client is the Go API client for the pokerfloor backend, used by the
// floorclock driver and by observer tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pokerfloor/pokerfloor/internal/model"
)

type Client struct {
	baseURL string
	client  *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return json.Unmarshal(data, out)
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code: %d, response: %s", e.StatusCode, e.Body)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *Client) FetchTournament(ctx context.Context, id string) (*model.Tournament, error) {
	var t model.Tournament
	if err := c.do(ctx, http.MethodGet, "/api/tournaments/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTournaments(ctx context.Context, casinoID string) ([]model.Tournament, error) {
	endpoint := "/api/tournaments"
	if casinoID != "" {
		endpoint += "?casinoId=" + url.QueryEscape(casinoID)
	}
	var items []model.Tournament
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchLiveState returns the tournament's live state, or (nil, nil) when no
// live record exists yet. The server answers `null` in that case.
func (c *Client) FetchLiveState(ctx context.Context, tournamentID string) (*model.LiveTournamentState, error) {
	var state *model.LiveTournamentState
	if err := c.do(ctx, http.MethodGet, "/api/tournaments/"+url.PathEscape(tournamentID)+"/live", nil, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// PushLiveState upserts the tournament's live state. Requires a staff or
// admin token for the owning casino.
func (c *Client) PushLiveState(ctx context.Context, tournamentID string, update model.LiveStateUpdate) error {
	return c.do(ctx, http.MethodPatch, "/api/tournaments/"+url.PathEscape(tournamentID)+"/live", update, nil)
}
