package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/guru-assistant/guru/domain"
	"github.com/guru-assistant/guru/usecase"
	"github.com/guru-assistant/guru/utils/log"
)

// WelcomeMessage seeds the landing page before the first turn.
const WelcomeMessage = "Hello there! I'm GURU, your witty and insightful AI assistant. " +
	"How can I illuminate your day or help you conquer your to-do list?"

const (
	errNoMessage   = "No message provided"
	errBadBody     = "Invalid request body"
	errUnavailable = "AI service is not available due to initialization issues."
)

// ChatHandler exposes the conversation over HTTP. svc is nil when the
// completion capability failed to construct at startup; every chat
// request then short-circuits with 503 until the process restarts.
type ChatHandler struct {
	svc     *usecase.ChatService
	history *domain.History
}

func NewChatHandler(svc *usecase.ChatService, history *domain.History) *ChatHandler {
	return &ChatHandler{svc: svc, history: history}
}

type chatRequest struct {
	Message string `json:"message"`
	// Stream defaults to true to match the browser client; set false for
	// a single JSON reply.
	Stream *bool `json:"stream"`
}

// Chat handles POST /api/chat. The default response is a
// text/event-stream body whose fragments concatenate to the full reply;
// with "stream": false it is a single {"reply": ...} object.
func (h *ChatHandler) Chat(c echo.Context) error {
	if h.svc == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": errUnavailable})
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errBadBody})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errNoMessage})
	}

	ctx := c.Request().Context()
	if req.Stream != nil && !*req.Stream {
		reply := h.svc.Reply(ctx, req.Message)
		return c.JSON(http.StatusOK, map[string]string{"reply": reply})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for fragment := range h.svc.StreamReply(ctx, req.Message) {
		if _, err := resp.Write([]byte(fragment)); err != nil {
			// Client went away; the relay's context handling stops the
			// upstream iteration.
			log.WithCtx(ctx).Debug("client disconnected mid-stream", zap.Error(err))
			break
		}
		resp.Flush()
	}
	return nil
}

// Reset handles POST /api/chat/reset and clears the rolling history.
func (h *ChatHandler) Reset(c echo.Context) error {
	h.history.Clear()
	return c.JSON(http.StatusOK, map[string]string{"status": "history cleared"})
}

// Health handles GET /health. No internal state is inspected.
func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "GURU is healthy!"})
}

// Index handles GET / and renders the landing page with the fixed
// welcome string.
func (h *ChatHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"InitialMessage": WelcomeMessage,
		"Year":           time.Now().Year(),
	})
}
