package powerflex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pfxtools/seshis/internal/util"
)

const defaultTimeout = 60 * time.Second

// Query carries the request parameters for the public sessions listing.
type Query struct {
	ACN           string
	Account       string
	Anonymize     bool
	IncludeActive bool
	SortBy        string
	SortOrder     string
	Limit         int
	Page          int
	From          time.Time
	To            time.Time
}

func (q Query) encode() url.Values {
	v := url.Values{}
	v.Set("acc", q.Account)
	v.Set("anonymize", strconv.FormatBool(q.Anonymize))
	v.Set("includeActive", strconv.FormatBool(q.IncludeActive))
	v.Set("sortBy", q.SortBy)
	v.Set("sortOrder", q.SortOrder)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("page", strconv.Itoa(q.Page))
	// The API takes the range as two repeated date params.
	v.Add("date", fmt.Sprintf("gte:%d", q.From.UnixMilli()))
	v.Add("date", fmt.Sprintf("lte:%d", q.To.UnixMilli()))
	return v
}

// Client fetches session records from the PowerFlex public sessions API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient builds a client for the given API base URL. token may be
// empty for endpoints that do not require auth.
func NewClient(baseURL, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// FetchSessions retrieves and normalizes one page of sessions. The raw
// response body is returned alongside so callers can cache it.
func (c *Client) FetchSessions(ctx context.Context, q Query) (*Normalized, []byte, error) {
	u := fmt.Sprintf("%s/v1/public/sessions/acn/%s?%s", c.baseURL, url.PathEscape(q.ACN), q.encode().Encode())
	c.log.Debug("fetching sessions", zap.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build sessions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sessions response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("sessions API returned %s: %s", resp.Status, util.Truncate(string(body), 200))
	}

	n, err := Normalize(body)
	if err != nil {
		return nil, nil, err
	}
	c.log.Debug("normalized sessions",
		zap.Int("total", n.Total),
		zap.Int("valid", n.Valid()),
		zap.Int("dropped", n.Dropped()),
	)
	return n, body, nil
}
