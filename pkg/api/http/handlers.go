package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bannerText = "🕉️ Bhagavad Gita Chapter API is running."

// ChapterRequest is the body of POST /api/chapter
type ChapterRequest struct {
	Chapter json.RawMessage `json:"chapter"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleRoot answers with a plain-text banner
func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, bannerText)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"chapters": "ok",
		},
	})
}

// handleChapter relays a chapter lookup and forwards the upstream JSON as-is
func (s *Server) handleChapter(c *gin.Context) {
	var req ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("invalid chapter request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: chapters.InvalidChapterMessage})
		return
	}

	res, err := s.chapters.LookupRaw(c.Request.Context(), req.Chapter)
	if err != nil {
		status, msg := chapters.ErrorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Body)
}
