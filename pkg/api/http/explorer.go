package http

import (
	"errors"
	"net/http"

	"github.com/aescanero/gita/internal/application/chapters"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	explorerTemplate   = "explorer.html"
	explorerInvalidMsg = "Please enter a valid chapter number (1–18)."
	explorerFailedMsg  = "Failed to fetch chapter details. Please try again later."
)

// explorerPage is the data rendered by the explorer template
type explorerPage struct {
	Input   string
	Min     int
	Max     int
	Error   string
	Chapter *chapters.Chapter
}

func newExplorerPage(input string) *explorerPage {
	return &explorerPage{
		Input: input,
		Min:   chapters.MinChapter,
		Max:   chapters.MaxChapter,
	}
}

// handleExplorer renders the empty lookup form
func (s *Server) handleExplorer(c *gin.Context) {
	c.HTML(http.StatusOK, explorerTemplate, newExplorerPage(""))
}

// handleExplorerSubmit looks up the submitted chapter and renders its details
func (s *Server) handleExplorerSubmit(c *gin.Context) {
	input := c.PostForm("chapter")
	page := newExplorerPage(input)

	chapter, err := chapters.ParseChapterString(input)
	if err != nil {
		page.Error = explorerInvalidMsg
		c.HTML(http.StatusBadRequest, explorerTemplate, page)
		return
	}

	res, err := s.chapters.Lookup(c.Request.Context(), chapter)
	if err != nil {
		if errors.Is(err, chapters.ErrInvalidChapter) {
			page.Error = explorerInvalidMsg
			c.HTML(http.StatusBadRequest, explorerTemplate, page)
			return
		}
		status, _ := chapters.ErrorStatus(err)
		page.Error = explorerFailedMsg
		c.HTML(status, explorerTemplate, page)
		return
	}

	details, err := res.Decode()
	if err != nil {
		s.logger.Error("failed to decode chapter", zap.Int("chapter", chapter), zap.Error(err))
		page.Error = explorerFailedMsg
		c.HTML(http.StatusBadGateway, explorerTemplate, page)
		return
	}

	page.Chapter = details
	c.HTML(http.StatusOK, explorerTemplate, page)
}
