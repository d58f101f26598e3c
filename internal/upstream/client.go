// Package upstream talks to the external game server. It only does
// transport: JSON in, JSON out, typed errors. Nothing here interprets
// game state.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// APIError carries the server's {detail} payload for non-2xx responses.
// When the body is not parseable JSON the raw response text is the detail.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type createGameRequest struct {
	CrewmateModel string `json:"crewmate_model,omitempty"`
	ImpostorModel string `json:"impostor_model,omitempty"`
}

type createGameResponse struct {
	GameID int    `json:"game_id"`
	Status string `json:"status"`
}

type humanActionRequest struct {
	GameID      int    `json:"game_id"`
	ActionIndex int    `json:"action_index"`
	SpeechText  string `json:"speech_text"`
}

// CreateGame starts a new game upstream and returns its id.
func (c *Client) CreateGame(ctx context.Context, crewmateModel, impostorModel string) (int, error) {
	var resp createGameResponse
	err := c.post(ctx, "/create_game", createGameRequest{
		CrewmateModel: crewmateModel,
		ImpostorModel: impostorModel,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.GameID, nil
}

// GameState fetches the current snapshot for a game.
func (c *Client) GameState(ctx context.Context, gameID int) (*Snapshot, error) {
	var snap Snapshot
	if err := c.get(ctx, "/game_state?game_id="+strconv.Itoa(gameID), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SubmitAction sends the human player's chosen action. speechText is empty
// for actions that do not require a message.
func (c *Client) SubmitAction(ctx context.Context, gameID, actionIndex int, speechText string) error {
	return c.post(ctx, "/human_action", humanActionRequest{
		GameID:      gameID,
		ActionIndex: actionIndex,
		SpeechText:  speechText,
	}, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	if detail == "" {
		detail = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
