// Package codesearch is a minimal client of the GitHub code search API.
package codesearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
)

const (
	DefaultBaseURL = "https://api.github.com"

	// RateLimitMessage is the Error of the single sentinel Item returned when GitHub answers 403.
	RateLimitMessage = "GitHub API rate limit. Add GITHUB_TOKEN for higher limits."

	mediaTypeV3 = "application/vnd.github.v3+json"
)

type (
	Item struct {
		Name       string
		Path       string
		HTMLURL    string
		Repository Repository

		// Error is only set on the rate limit sentinel.
		Error string
	}

	Repository struct {
		FullName string
	}
)

// StatusError is returned for any non-200 answer other than 403.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("code search: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited tells whether `items` is the rate limit sentinel.
func IsRateLimited(items []Item) bool {
	return len(items) == 1 && items[0].Error != ""
}

// headerTransport sets the v3 media type, and the `token` authorization GitHub documents for code search.
type headerTransport struct {
	token string
	base  http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", mediaTypeV3)
	}
	if t.token != "" {
		req.Header.Set("Authorization", "token "+t.token)
	}
	return t.base.RoundTrip(req)
}

type Client struct {
	gh      *github.Client
	timeout time.Duration
}

func NewClient(conf core.CodeSearchConfig) *Client {
	gh := github.NewClient(&http.Client{
		Timeout:   conf.Timeout,
		Transport: headerTransport{token: conf.Token, base: http.DefaultTransport},
	})
	if conf.BaseURL != "" {
		if base, err := url.Parse(strings.TrimRight(conf.BaseURL, "/") + "/"); err == nil {
			gh.BaseURL = base
		}
	}
	return &Client{gh: gh, timeout: conf.Timeout}
}

// Search looks for `query` in files of `language`, returning at most `max` items.
func (c *Client) Search(ctx context.Context, query, language string, max int) ([]Item, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, _, err := c.gh.Search.Code(ctx, query+" language:"+language, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: max},
	})
	if err != nil {
		if isForbidden(err) {
			return []Item{{Error: RateLimitMessage}}, nil
		}
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			return nil, &StatusError{StatusCode: errResp.Response.StatusCode, Body: errorBody(errResp)}
		}
		return nil, errors.Wrap(err, "searching code")
	}

	items := make([]Item, 0, len(res.CodeResults))
	for _, r := range res.CodeResults {
		items = append(items, Item{
			Name:       r.GetName(),
			Path:       r.GetPath(),
			HTMLURL:    r.GetHTMLURL(),
			Repository: Repository{FullName: r.GetRepository().GetFullName()},
		})
	}
	return items, nil
}

func isForbidden(err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var errResp *github.ErrorResponse
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return true
	case errors.As(err, &errResp):
		return errResp.Response != nil && errResp.Response.StatusCode == http.StatusForbidden
	}
	return false
}

// errorBody prefers the message GitHub sends, falling back to the raw (re-buffered) body.
func errorBody(errResp *github.ErrorResponse) string {
	if errResp.Message != "" {
		return errResp.Message
	}
	if errResp.Response.Body == nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(errResp.Response.Body, 512))
	return strings.TrimSpace(string(body))
}

// ErrRateLimited is returned by SearchCode in place of the rate limit sentinel.
var ErrRateLimited = errors.New(RateLimitMessage)

var _ core.CodeSearcher = (*Client)(nil)

// SearchCode is Search reduced to references; a rate limited search is an error.
func (c *Client) SearchCode(ctx context.Context, query, language string, max int) ([]core.CodeReference, error) {
	items, err := c.Search(ctx, query, language, max)
	if err != nil {
		return nil, err
	}
	if IsRateLimited(items) {
		return nil, ErrRateLimited
	}

	refs := make([]core.CodeReference, 0, len(items))
	for _, item := range items {
		refs = append(refs, core.CodeReference{
			Repository: item.Repository.FullName,
			Path:       item.Path,
			URL:        item.HTMLURL,
		})
	}
	return refs, nil
}
