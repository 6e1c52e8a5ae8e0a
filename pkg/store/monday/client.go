// Package monday reads board items from the monday.com GraphQL API and from board exports.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	SourceName = "monday"

	DefaultEndpoint   = "https://api.monday.com/v2"
	DefaultBoardID    = "3678769221"
	DefaultPageLimit  = 500
	DefaultMaxRetries = 3
	DefaultTimeout    = 30 * time.Second
)

const itemFields = `cursor items { id name column_values { text column { title } } }`

var (
	firstPageQuery = `query ($boardId: [ID!], $limit: Int!) { boards(ids: $boardId) { items_page(limit: $limit) { ` +
		itemFields + ` } } }`
	nextPageQuery = `query ($cursor: String!, $limit: Int!) { next_items_page(limit: $limit, cursor: $cursor) { ` +
		itemFields + ` } }`
)

// Options configures a Client. Zero values fall back to the defaults above, except MaxRetries
// where zero disables retries.
type Options struct {
	Endpoint   string
	APIKey     string
	BoardID    string
	PageLimit  int
	MaxRetries int
	Timeout    time.Duration
}

// Client fetches every item of one board, following items_page cursors.
type Client struct {
	http *retryablehttp.Client
	opts Options
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("monday api key is required")
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.BoardID == "" {
		opts.BoardID = DefaultBoardID
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = DefaultPageLimit
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.MaxRetries
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			zerolog.Ctx(req.Context()).Warn().
				Int("attempt", attempt).
				Str("endpoint", req.URL.String()).
				Msg("retrying board request")
		}
	}

	return &Client{http: rc, opts: opts}, nil
}

func (c *Client) Name() string {
	return SourceName
}

// Fetch pages through the board until the cursor runs out. Any transport, status or GraphQL error
// aborts the fetch with a FetchError; no partial result is returned.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	logger := zerolog.Ctx(ctx)

	var first struct {
		Boards []struct {
			ItemsPage itemsPage `json:"items_page"`
		} `json:"boards"`
	}
	err := c.query(ctx, firstPageQuery, map[string]any{
		"boardId": []string{c.opts.BoardID},
		"limit":   c.opts.PageLimit,
	}, &first)
	if err != nil {
		return nil, err
	}
	if len(first.Boards) == 0 {
		return nil, c.fetchError(fmt.Errorf("board %s not found", c.opts.BoardID))
	}

	page := first.Boards[0].ItemsPage
	items := append([]item{}, page.Items...)
	pages := 1
	for page.Cursor != nil && *page.Cursor != "" {
		var next struct {
			NextItemsPage itemsPage `json:"next_items_page"`
		}
		err := c.query(ctx, nextPageQuery, map[string]any{
			"cursor": *page.Cursor,
			"limit":  c.opts.PageLimit,
		}, &next)
		if err != nil {
			return nil, err
		}
		page = next.NextItemsPage
		items = append(items, page.Items...)
		pages++
	}

	logger.Debug().
		Str("board_id", c.opts.BoardID).
		Int("pages", pages).
		Int("items", len(items)).
		Msg("fetched board items")
	return toRawItems(items), nil
}

type itemsPage struct {
	Cursor *string `json:"cursor"`
	Items  []item  `json:"items"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fetchError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return c.fetchError(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Msg("failed to close response body")
		}
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fetchError(fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return c.fetchError(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(payload)))
	}

	var gr graphQLResponse
	if err := json.Unmarshal(payload, &gr); err != nil {
		return c.fetchError(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return c.fetchError(fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; ")))
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return c.fetchError(errors.New("response has no data"))
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return c.fetchError(fmt.Errorf("failed to decode data: %w", err))
	}
	return nil
}

func (c *Client) fetchError(err error) error {
	return &domain.FetchError{Source: SourceName, Err: err}
}

func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
