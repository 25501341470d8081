package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"harborview/models"
	"harborview/services/assistant"
	"harborview/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssistantHandler exposes the streaming chat endpoint.
type AssistantHandler struct {
	Svc assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// ChatStreamHandler runs one assistant turn and streams events to the client.
// Each event is one JSON object on its own "data: <json>" line.
func (h *AssistantHandler) ChatStreamHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.Message == "" {
		utils.JSONError(c, http.StatusBadRequest, "Message is required", "")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Session-ID", req.SessionID)
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	emit := func(ev models.StreamEvent) error {
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n", b); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	if err := h.Svc.StreamChat(c.Request.Context(), req, emit); err != nil {
		// The stream already carried an error event; headers are gone, so
		// just record the cause.
		logger.Error("Assistant stream ended with error",
			zap.String("sessionID", req.SessionID), zap.Error(err))
	}
}
