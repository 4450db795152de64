package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/casafile/api/internal/models"
)

// Submitter delivers a completed form document to the acknowledgment
// endpoint. The call is best-effort: no retries, no idempotency key;
// callers decide whether to try again.
type Submitter interface {
	Submit(ctx context.Context, form *models.FormData) error
}

// HTTPSubmitter posts the JSON-serialized form to a fixed URL.
type HTTPSubmitter struct {
	url    string
	client *http.Client
}

// NewHTTPSubmitter creates a submitter targeting the given URL. A nil
// client falls back to http.DefaultClient.
func NewHTTPSubmitter(url string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{url: url, client: client}
}

// Submit posts the form and treats any non-2xx status as failure.
func (s *HTTPSubmitter) Submit(ctx context.Context, form *models.FormData) error {
	body, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submission request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil && payload.Error != "" {
			return fmt.Errorf("submission rejected: %s", payload.Error)
		}
		return fmt.Errorf("submission failed with status %d", resp.StatusCode)
	}

	return nil
}
