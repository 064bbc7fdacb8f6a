// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/behavior-chart/server/models"
)

// APIClient talks to the board API. Every write a participant makes
// goes through these routes; there is no direct-to-storage side
// channel. Token may be empty for link-authorized operations.
type APIClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateBoard creates a board with its session and returns the share URL.
func (c *APIClient) CreateBoard(ctx context.Context, req models.CreateBoardRequest) (models.CreateBoardResponse, error) {
	var resp models.CreateBoardResponse
	err := c.do(ctx, http.MethodPost, "/api/boards", req, &resp)
	return resp, err
}

// ResolveSession resolves a shareable code to its session and board.
func (c *APIClient) ResolveSession(ctx context.Context, code string) (models.ResolveSessionResponse, error) {
	var resp models.ResolveSessionResponse
	err := c.do(ctx, http.MethodGet, "/api/sessions/"+code, nil, &resp)
	return resp, err
}

// LoadPins fetches the full pin list for a session (initial load).
func (c *APIClient) LoadPins(ctx context.Context, sessionID string) ([]models.Pin, error) {
	var resp models.ListPinsResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+sessionID+"/pins", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pins, nil
}

// AddPin creates a centered pin for a person. The rendered list picks
// it up from the feed's insert event, not from this response.
func (c *APIClient) AddPin(ctx context.Context, sessionID, personName, placedBy string) (models.Pin, error) {
	var pin models.Pin
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/pins", models.CreatePinRequest{
		PersonName: personName,
		PlacedBy:   placedBy,
	}, &pin)
	return pin, err
}

// MovePin persists a pin's position. Satisfies PinWriter.
func (c *APIClient) MovePin(ctx context.Context, pinID string, x, y float64) error {
	return c.do(ctx, http.MethodPatch, "/api/pins/"+pinID+"/position", models.MovePinRequest{X: x, Y: y}, nil)
}

// RemovePin hard-deletes a pin.
func (c *APIClient) RemovePin(ctx context.Context, pinID string) error {
	return c.do(ctx, http.MethodDelete, "/api/pins/"+pinID, nil, nil)
}

// FeedURL returns the websocket endpoint for a session's change feed.
func (c *APIClient) FeedURL(sessionID string) string {
	ws := c.baseURL
	if strings.HasPrefix(ws, "https://") {
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	} else if strings.HasPrefix(ws, "http://") {
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return ws + "/api/sessions/" + sessionID + "/feed"
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
