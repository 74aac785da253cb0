package scoresvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable reports that the score service could not be reached or
// did not answer successfully.
var ErrUnavailable = errors.New("scoresvc: service unavailable")

// DefaultURL is where the score server listens by default.
const DefaultURL = "http://localhost:5500"

// Client talks to a score server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Submit posts a finished run and returns the board with its rank.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Response, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("scoresvc: marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scoresvc: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Scores fetches one page of the board.
func (c *Client) Scores(ctx context.Context, page, limit int) (*Response, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/scores?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("scoresvc: create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		//nolint:errcheck // Best-effort decode of the error body
		json.Unmarshal(data, &e)
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("scoresvc: rejected with status %d: %s", resp.StatusCode, e.Error)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("scoresvc: decode response: %w", err)
	}
	return &out, nil
}
