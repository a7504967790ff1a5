// Package client is a Go client for the wallboard sync service: snapshot
// pull/push over HTTP and a websocket listener for change events. Event
// payloads are never applied locally; every event is a cue to repull.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wallboard-backend/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// GetData pulls the full snapshot.
func (c *Client) GetData(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/data", nil)
	if err != nil {
		return models.Snapshot{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("get data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Snapshot{}, apiError(resp)
	}
	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	return snap, nil
}

// SaveData pushes a full replacement snapshot. The caller must have cloned
// and patched the latest pull; whoever writes last wins in full.
func (c *Client) SaveData(ctx context.Context, snap models.Snapshot) error {
	return c.do(ctx, http.MethodPost, "/api/v1/data", snap, nil)
}

// CreateMessage uses the convenience endpoint; the returned record carries
// the server-assigned id when the caller left it zero.
func (c *Client) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	var out struct {
		Message models.Message `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/messages", msg, &out); err != nil {
		return models.Message{}, err
	}
	return out.Message, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/messages/%d", id), nil, nil)
}

// UpdateMessage shallow-merges the given fields server-side.
func (c *Client) UpdateMessage(ctx context.Context, id int64, fields map[string]any) (models.Message, error) {
	var out struct {
		Message models.Message `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/messages/%d", id), fields, &out); err != nil {
		return models.Message{}, err
	}
	return out.Message, nil
}

func (c *Client) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	var out struct {
		Folder models.Folder `json:"folder"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/folders", folder, &out); err != nil {
		return models.Folder{}, err
	}
	return out.Folder, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/folders/%d", id), nil, nil)
}

func (c *Client) RenameFolder(ctx context.Context, id int64, name string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/folders/%d", id), map[string]any{"name": name}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = resp.Status
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", body.Error, models.ErrNotFound)
	}
	return fmt.Errorf("server error (%d): %s", resp.StatusCode, body.Error)
}
