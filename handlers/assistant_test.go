package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"harborview/models"
	"harborview/services/assistant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssistant emits a fixed event script and records the request it saw.
type stubAssistant struct {
	events []models.StreamEvent
	req    models.ChatRequest
	err    error
}

func (s *stubAssistant) StreamChat(ctx context.Context, req models.ChatRequest, emit assistant.EventSink) error {
	s.req = req
	for _, ev := range s.events {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return s.err
}

func chatRouter(svc assistant.AssistantService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAssistantHandler(svc)
	r.POST("/api/assistant/chat", h.ChatStreamHandler)
	return r
}

func TestChatStreamWireFormat(t *testing.T) {
	ok := true
	stub := &stubAssistant{events: []models.StreamEvent{
		{Type: models.EventThinking, Content: "Checking bookings."},
		{Type: models.EventToolStart, CallID: "c1", Tool: "get_today_snapshot", Args: map[string]any{}},
		{Type: models.EventToolResult, CallID: "c1", Tool: "get_today_snapshot", Data: map[string]any{"arrivals": 4.0}, Success: &ok},
		{Type: models.EventText, Content: "Four arrivals today."},
	}}
	router := chatRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/chat",
		strings.NewReader(`{"sessionId":"s1","message":"today?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "s1", stub.req.SessionID)
	assert.Equal(t, "today?", stub.req.Message)

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	for i, line := range lines {
		require.True(t, strings.HasPrefix(line, "data: "), "line %d: %q", i, line)
		var ev models.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
	}

	var start, result models.StreamEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &start))
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[2], "data: ")), &result))
	assert.Equal(t, models.EventToolStart, start.Type)
	assert.Equal(t, models.EventToolResult, result.Type)
	assert.Equal(t, start.CallID, result.CallID)
	require.NotNil(t, result.Success)
	assert.True(t, *result.Success)
}

func TestChatStreamGeneratesSessionID(t *testing.T) {
	stub := &stubAssistant{events: []models.StreamEvent{
		{Type: models.EventText, Content: "hi"},
	}}
	router := chatRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/chat",
		strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, stub.req.SessionID)
	assert.Equal(t, stub.req.SessionID, w.Header().Get("X-Session-ID"))
}

func TestChatStreamRequiresMessage(t *testing.T) {
	router := chatRouter(&stubAssistant{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/chat",
		strings.NewReader(`{"sessionId":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
