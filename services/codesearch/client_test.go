package codesearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(core.CodeSearchConfig{BaseURL: server.URL + "/", Token: token, Timeout: 5 * time.Second})
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, "gh-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/code", r.URL.Path)
		assert.Equal(t, "context cancel language:go", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "token gh-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_count": 2,
			"items": []map[string]any{
				{"name": "a.go", "path": "pkg/a.go", "html_url": "https://github.com/o/r/blob/main/pkg/a.go", "repository": map[string]any{"full_name": "o/r"}},
				{"name": "b.go", "path": "b.go", "html_url": "https://github.com/o/s/blob/main/b.go", "repository": map[string]any{"full_name": "o/s"}},
			},
		})
	})

	items, err := client.Search(context.Background(), "context cancel", "go", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Item{
		Name: "a.go", Path: "pkg/a.go", HTMLURL: "https://github.com/o/r/blob/main/pkg/a.go",
		Repository: Repository{FullName: "o/r"},
	}, items[0])
	assert.False(t, IsRateLimited(items))
}

func TestClient_Search_noToken(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"total_count": 0}`))
	})

	items, err := client.Search(context.Background(), "x", "go", 3)
	require.NoError(t, err)
	assert.Equal(t, []Item{}, items)
}

func TestClient_Search_rateLimited(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	items, err := client.Search(context.Background(), "x", "go", 3)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Error: RateLimitMessage}}, items)
	assert.True(t, IsRateLimited(items))
}

func TestClient_Search_rateLimitHeaders(t *testing.T) {
	client := newTestClient(t, "gh-token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "10")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})

	items, err := client.Search(context.Background(), "x", "go", 3)
	require.NoError(t, err)
	assert.True(t, IsRateLimited(items))
}

func TestClient_Search_errorMessage(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message": "Service Unavailable"}`))
	})

	_, err := client.Search(context.Background(), "x", "go", 3)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "Service Unavailable", statusErr.Body)
}

func TestClient_Search_badStatus(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("Validation Failed"))
	})

	_, err := client.Search(context.Background(), "x", "go", 3)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, "Validation Failed", statusErr.Body)
}

func TestClient_Search_timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)
	client := NewClient(core.CodeSearchConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := client.Search(context.Background(), "x", "go", 3)
	assert.Error(t, err)
}

func TestClient_SearchCode(t *testing.T) {
	t.Run("references", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items": [{"path": "a.go", "html_url": "https://x/a.go", "repository": {"full_name": "o/r"}}]}`))
		})
		refs, err := client.SearchCode(context.Background(), "x", "go", 3)
		require.NoError(t, err)
		assert.Equal(t, []core.CodeReference{{Repository: "o/r", Path: "a.go", URL: "https://x/a.go"}}, refs)
	})

	t.Run("rate limited", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		_, err := client.SearchCode(context.Background(), "x", "go", 3)
		assert.Equal(t, ErrRateLimited, err)
	})
}
