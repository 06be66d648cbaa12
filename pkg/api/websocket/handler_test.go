package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/aescanero/gita/pkg/adapters/scripture"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls []int
}

func (f *stubFetcher) called() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

func (f *stubFetcher) FetchChapter(ctx context.Context, chapter int) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chapter)
	f.mu.Unlock()

	switch chapter {
	case 13:
		return nil, &scripture.APIError{StatusCode: http.StatusForbidden, Message: "You are not subscribed to this API."}
	case 17:
		return nil, errors.New("dial tcp: connection refused")
	}
	return []byte(fmt.Sprintf(`{"chapter_number":%d}`, chapter)), nil
}

func dial(t *testing.T, fetcher *stubFetcher) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(chapters.NewService(fetcher, nil, nil, nil), "*", nil)
	router := gin.New()
	router.GET("/api/chapter/ws", h.HandleChapterStream)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/chapter/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, frame string) Reply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestHandleChapterStream(t *testing.T) {
	fetcher := &stubFetcher{}
	conn := dial(t, fetcher)

	reply := roundTrip(t, conn, `{"chapter": 4}`)
	assert.Equal(t, http.StatusOK, reply.Status)
	assert.JSONEq(t, `{"chapter_number":4}`, string(reply.Chapter))
	assert.Empty(t, reply.Error)

	reply = roundTrip(t, conn, `{"chapter": "18"}`)
	assert.Equal(t, http.StatusOK, reply.Status)

	reply = roundTrip(t, conn, `{"chapter": 0}`)
	assert.Equal(t, http.StatusBadRequest, reply.Status)
	assert.Equal(t, chapters.InvalidChapterMessage, reply.Error)

	reply = roundTrip(t, conn, `garbage`)
	assert.Equal(t, http.StatusBadRequest, reply.Status)

	reply = roundTrip(t, conn, `{"chapter": 13}`)
	assert.Equal(t, http.StatusForbidden, reply.Status)
	assert.Equal(t, "You are not subscribed to this API.", reply.Error)

	reply = roundTrip(t, conn, `{"chapter": 17}`)
	assert.Equal(t, http.StatusInternalServerError, reply.Status)
	assert.Equal(t, chapters.InternalErrorMessage, reply.Error)

	assert.Equal(t, []int{4, 18, 13, 17}, fetcher.called())
}

func TestHandleChapterStream_OriginCheck(t *testing.T) {
	h := NewHandler(chapters.NewService(&stubFetcher{}, nil, nil, nil), "https://gita.example", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chapter/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "https://gita.example")
	assert.True(t, h.upgrader.CheckOrigin(req))
}
