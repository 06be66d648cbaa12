package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Request is a lookup frame sent by the client
type Request struct {
	Chapter json.RawMessage `json:"chapter"`
}

// Reply is the frame written back for every request
type Reply struct {
	Status  int             `json:"status"`
	Chapter json.RawMessage `json:"chapter,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Handler handles WebSocket connections
type Handler struct {
	chapters *chapters.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler.
// allowOrigin mirrors the HTTP CORS setting; "*" accepts any origin.
func NewHandler(svc *chapters.Service, allowOrigin string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		chapters: svc,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowOrigin == "" || allowOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowOrigin
			},
		},
	}
}

// HandleChapterStream serves lookups until the client disconnects
func (h *Handler) HandleChapterStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMessageSize)

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	ctx := c.Request.Context()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := h.lookup(c, data)

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Error("failed to write message", zap.Error(err))
			return
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// lookup turns one request frame into a reply
func (h *Handler) lookup(c *gin.Context, data []byte) Reply {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Reply{Status: http.StatusBadRequest, Error: chapters.InvalidChapterMessage}
	}

	res, err := h.chapters.LookupRaw(c.Request.Context(), req.Chapter)
	if err != nil {
		status, msg := chapters.ErrorStatus(err)
		return Reply{Status: status, Error: msg}
	}

	return Reply{Status: http.StatusOK, Chapter: res.Body}
}
