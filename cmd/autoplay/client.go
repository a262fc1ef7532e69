package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/view"
)

// Client talks to the battleship HTTP API for a single session
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends a JSON request and decodes the JSON response into out
func (c *Client) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return fmt.Sprintf("/api/sessions/%s%s", c.sessionID, suffix)
}

func (c *Client) CreateSession(configID string) (*service.SessionInfo, error) {
	var req map[string]string
	if configID != "" {
		req = map[string]string{"config_id": configID}
	}
	var info service.SessionInfo
	if err := c.do(http.MethodPost, "/api/sessions", req, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return &info, nil
}

// Resume points the client at an existing session
func (c *Client) Resume(sessionID string) (*service.SessionInfo, error) {
	c.sessionID = sessionID
	var info service.SessionInfo
	if err := c.do(http.MethodGet, c.sessionPath(""), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) State() (*view.MatchView, error) {
	var match view.MatchView
	if err := c.do(http.MethodGet, c.sessionPath("/state"), nil, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (c *Client) action(suffix string) (*view.MatchView, error) {
	var result service.ActionResult
	if err := c.do(http.MethodPost, c.sessionPath(suffix), nil, &result); err != nil {
		return nil, err
	}
	return result.Match, nil
}

func (c *Client) Randomize() (*view.MatchView, error) { return c.action("/randomize") }

func (c *Client) Start() (*view.MatchView, error) { return c.action("/start") }

func (c *Client) Restart() (*view.MatchView, error) { return c.action("/restart") }

func (c *Client) Fire(target engine.Coordinate) (*service.FireResult, error) {
	var result service.FireResult
	req := map[string]string{"cell": view.CoordinateLabel(target)}
	if err := c.do(http.MethodPost, c.sessionPath("/fire"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
