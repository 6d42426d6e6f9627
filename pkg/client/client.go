// Package client talks to the back-office checklist endpoints over the
// application's generic authenticated JSON contract: bearer-token header,
// JSON body, standard status-code-to-error mapping. The core never retries;
// transport policy belongs here, not in the wizard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cateringlab/checklist/pkg/checklist"
)

// Sentinel errors for the standard status-code mapping.
var (
	ErrUnauthorized = errors.New("client: unauthorized")
	ErrNotFound     = errors.New("client: checklist not found")
)

// Client implements the persistence collaborator over HTTP.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithHTTPClient overrides the transport, e.g. to impose timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New builds a client for the backend base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Create persists a new checklist and returns the server-assigned id. Called
// only from explicit save actions, never from auto-save.
func (c *Client) Create(ctx context.Context, draft *checklist.Draft) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "checklists", encodeDraft(draft), &out); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, errors.New("client: create response carried no id")
	}
	return out.ID, nil
}

// Update replaces the full server-side state of an existing checklist.
func (c *Client) Update(ctx context.Context, id int64, draft *checklist.Draft) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("checklists/%d", id), encodeDraft(draft), nil)
}

// Get hydrates a draft from a persisted checklist.
func (c *Client) Get(ctx context.Context, id int64) (*checklist.Draft, error) {
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("checklists/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return decodeDraft(payload), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	target := c.baseURL.JoinPath(path)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("client: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// encodeDraft flattens a draft into the wire shape: the field map plus the
// checklist_type and status discriminants.
func encodeDraft(draft *checklist.Draft) map[string]any {
	payload := make(map[string]any, len(draft.Fields)+2)
	for k, v := range draft.Fields {
		payload[k] = v
	}
	payload["checklist_type"] = string(draft.Type)
	payload["status"] = string(draft.Status)
	return payload
}

func decodeDraft(payload map[string]any) *checklist.Draft {
	draft := &checklist.Draft{
		Type:   checklist.TypeBox,
		Status: checklist.StatusDraft,
		Fields: make(map[string]any, len(payload)),
	}
	for k, v := range payload {
		switch k {
		case "id":
			if f, ok := v.(float64); ok {
				draft.ID = int64(f)
			}
		case "checklist_type":
			if s, ok := v.(string); ok && s != "" {
				draft.Type = checklist.Type(s)
			}
		case "status":
			if s, ok := v.(string); ok && s != "" {
				draft.Status = checklist.Status(s)
			}
		default:
			if v != nil {
				draft.Fields[k] = v
			}
		}
	}
	return draft
}
