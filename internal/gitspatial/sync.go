package gitspatial

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// StartSync asks the server to begin syncing the resource (POST).
// The server answers 201 and finishes the sync in the background.
func (c *Client) StartSync(ref Ref) error {
	if _, err := c.send(http.MethodPost, ref.Path()); err != nil {
		return fmt.Errorf("failed to start sync of %s: %w", ref, err)
	}
	return nil
}

// StopSync asks the server to unsync the resource (DELETE).
func (c *Client) StopSync(ref Ref) error {
	if _, err := c.send(http.MethodDelete, ref.Path()); err != nil {
		return fmt.Errorf("failed to stop sync of %s: %w", ref, err)
	}
	return nil
}

// SyncStatus retrieves the current sync status of the resource. The returned
// status is the raw wire value and may lie outside the resource's catalog.
func (c *Client) SyncStatus(ref Ref) (status.Status, error) {
	body, err := c.poll(ref)
	if err != nil {
		return "", fmt.Errorf("failed to get sync status of %s: %w", ref, err)
	}

	var response statusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse sync status response for %s: %w", ref, err)
	}
	if response.Status == "" {
		return "", fmt.Errorf("sync status response for %s has no status", ref)
	}

	return status.Status(response.Status), nil
}
