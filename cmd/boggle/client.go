package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wricardo/boggle-blast/game/engine"
	"github.com/wricardo/boggle-blast/game/service"
)

// Client talks to a Boggle Blast server's REST API for one session.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID returns the session the client is bound to.
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) CreateSession(ctx context.Context, configName string) (*engine.GameState, error) {
	var body interface{}
	if configName != "" {
		body = map[string]string{"config_id": configName}
	}

	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

// UseSession binds the client to an existing session and returns its state.
func (c *Client) UseSession(ctx context.Context, id string) (*engine.GameState, error) {
	var session service.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) CollapseRank(ctx context.Context, rank int) (*service.CollapseResult, error) {
	var result service.CollapseResult
	req := service.CollapseRequest{Rank: &rank}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/collapse"), req, &result); err != nil {
		return nil, fmt.Errorf("collapse: %w", err)
	}
	return &result, nil
}

type resetResponse struct {
	Message string            `json:"message"`
	State   *engine.GameState `json:"state"`
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp resetResponse
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + url.PathEscape(c.sessionID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s - %s", resp.Status, strings.TrimSpace(string(data)))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
