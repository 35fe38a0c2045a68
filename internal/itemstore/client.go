// Package itemstore talks to the remote board resource: a JSON collection
// that supports list, create and a partial status update.
package itemstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/idilsaglam/lostboard/internal/model"
)

const (
	defaultUserAgent = "lostboard/1.0"
	maxErrorBody     = 512
)

// Client is the HTTP wrapper for the board collection endpoint.
// There are no retries and no client-side timeout; bound calls with ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the collection at baseURL, e.g.
// https://example.mockapi.io/api/v1/board.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ListItems fetches the whole collection via GET <base>.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	const op = "list items"

	body, err := c.do(ctx, op, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	var items []model.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	if items == nil {
		// "null" is valid JSON but not a collection.
		return nil, &ParseError{Op: op, Err: errors.New("expected a JSON array")}
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, &ParseError{Op: op, Err: fmt.Errorf("item %d has no id", i)}
		}
		if _, dup := seen[it.ID]; dup {
			return nil, &ParseError{Op: op, Err: fmt.Errorf("duplicate id %q", it.ID)}
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}

// CreateItem submits a draft via POST <base> and returns the stored item
// with its assigned id.
func (c *Client) CreateItem(ctx context.Context, d model.Draft) (model.Item, error) {
	const op = "create item"

	payload, err := json.Marshal(d)
	if err != nil {
		return model.Item{}, fmt.Errorf("%s: marshal: %w", op, err)
	}

	body, err := c.do(ctx, op, http.MethodPost, c.baseURL, payload)
	if err != nil {
		return model.Item{}, err
	}
	return decodeItem(op, body)
}

// MarkDone sends PUT <base>/{id} with {"status": true}. The remote contract
// does not tell "not found" apart from other failures; both are FetchErrors.
func (c *Client) MarkDone(ctx context.Context, id string) (model.Item, error) {
	const op = "mark done"

	if strings.TrimSpace(id) == "" {
		return model.Item{}, fmt.Errorf("%s: empty id", op)
	}
	payload, err := json.Marshal(struct {
		Status model.Status `json:"status"`
	}{Status: model.StatusDone})
	if err != nil {
		return model.Item{}, fmt.Errorf("%s: marshal: %w", op, err)
	}

	body, err := c.do(ctx, op, http.MethodPut, c.baseURL+"/"+url.PathEscape(id), payload)
	if err != nil {
		return model.Item{}, err
	}
	return decodeItem(op, body)
}

func decodeItem(op string, body []byte) (model.Item, error) {
	var it model.Item
	if err := json.Unmarshal(body, &it); err != nil {
		return model.Item{}, &ParseError{Op: op, Err: err}
	}
	if it.ID == "" {
		return model.Item{}, &ParseError{Op: op, Err: errors.New("item has no id")}
	}
	return it, nil
}

// do performs one round trip and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Op:         op,
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
