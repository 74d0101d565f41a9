package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexsisay/alemu-portfolio-backend/internal"
	"github.com/alexsisay/alemu-portfolio-backend/internal/chat"
	"github.com/alexsisay/alemu-portfolio-backend/internal/provider"
	"github.com/alexsisay/alemu-portfolio-backend/internal/store"
)

// nginx's convention for a client that hung up before the response.
const statusClientClosedRequest = 499

// ContentStore is the read side of the static content.
type ContentStore interface {
	Profile() internal.Profile
	Posts() []internal.BlogPost
	Post(id string) (internal.BlogPost, error)
	Dashboard() internal.Dashboard
}

// Assistant answers chat questions.
type Assistant interface {
	Ask(ctx context.Context, question string) (chat.Answer, error)
	Status() provider.Status
}

type Handler struct {
	content   ContentStore
	assistant Assistant
	version   string
	log       zerolog.Logger
}

func NewHandler(content ContentStore, assistant Assistant, version string, logger zerolog.Logger) *Handler {
	return &Handler{content: content, assistant: assistant, version: version, log: logger}
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Alemu Portfolio Backend API",
		"version": h.version,
		"endpoints": gin.H{
			"health":    "/api/health",
			"profile":   "/api/profile",
			"blog":      "/api/blog",
			"dashboard": "/api/dashboard",
			"aiChat":    "/api/ai-chat",
			"aiStatus":  "/api/ai-status",
		},
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func (h *Handler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Profile())
}

func (h *Handler) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Posts())
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.content.Post(c.Param("id"))
	if errors.Is(err, store.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", c.Param("id")).Msg("blog lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Dashboard())
}

func (h *Handler) AIStatus(c *gin.Context) {
	st := h.assistant.Status()
	c.JSON(http.StatusOK, internal.AIStatusResponse{
		Provider:  string(st.Name),
		Model:     st.Model,
		Available: st.Available,
		Fallback:  st.UsingFallback,
	})
}

func (h *Handler) Chat(c *gin.Context) {
	var req internal.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	ans, err := h.assistant.Ask(c.Request.Context(), req.Question)
	switch {
	case errors.Is(err, chat.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("chat failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, internal.ChatResponse{
		Response:  ans.Text,
		Provider:  string(ans.Provider.Name),
		Fallback:  ans.Provider.UsingFallback,
		Timestamp: ans.Timestamp,
	})
}
