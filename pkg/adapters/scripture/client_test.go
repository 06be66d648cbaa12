package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(&Config{
		BaseURL: url,
		APIKey:  "test-key",
		Host:    "bhagavad-gita3.p.rapidapi.com",
		Timeout: time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestFetchChapter_Success(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/chapters/2/", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get(HeaderKey))
		assert.Equal(t, "bhagavad-gita3.p.rapidapi.com", r.Header.Get(HeaderHost))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chapter_number":2,"name":"Sankhya Yoga","verses_count":72}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	body, err := client.FetchChapter(context.Background(), 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chapter_number":2,"name":"Sankhya Yoga","verses_count":72}`, string(body))
	assert.Equal(t, 1, calls)
}

func TestFetchChapter_UpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message passed through", status: http.StatusForbidden, body: `{"message":"You are not subscribed to this API."}`, wantMessage: "You are not subscribed to this API."},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"message":"Too many requests"}`, wantMessage: "Too many requests"},
		{name: "no message field", status: http.StatusNotFound, body: `{"detail":"Not found."}`, wantMessage: "API Error"},
		{name: "non json body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMessage: "API Error"},
		{name: "non string message", status: http.StatusInternalServerError, body: `{"message":42}`, wantMessage: "API Error"},
		{name: "empty body", status: http.StatusServiceUnavailable, body: ``, wantMessage: "API Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.FetchChapter(context.Background(), 7)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestFetchChapter_BodyLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "at limit", size: maxBodySize},
		{name: "over limit", size: 2 * maxBodySize, wantErr: true},
		{name: "one byte over", size: maxBodySize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"chapter_summary":"` + strings.Repeat("a", tt.size-len(`{"chapter_summary":""}`)) + `"}`
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			body, err := client.FetchChapter(context.Background(), 1)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, body, tt.size)
				assert.True(t, json.Valid(body))
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBodyTooLarge)
			assert.Nil(t, body)

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr))
		})
	}
}

func TestFetchChapter_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url)

	_, err := client.FetchChapter(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestFetchChapter_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchChapter(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(&Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewClient(&Config{BaseURL: "http://localhost"})
	assert.Error(t, err)

	c, err := NewClient(&Config{BaseURL: "http://localhost/ ", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", c.baseURL)
}
