package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"harborview/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxToolRounds bounds the model/tool loop within one turn.
const maxToolRounds = 8

// EventSink receives stream events in emission order. A sink error (usually a
// gone client) aborts the turn.
type EventSink func(models.StreamEvent) error

// AssistantService runs conversational turns against the model and the tool
// registry, streaming events back to the caller.
type AssistantService interface {
	StreamChat(ctx context.Context, req models.ChatRequest, emit EventSink) error
}

// DefaultAssistantService is the production implementation.
type DefaultAssistantService struct {
	Model  ModelClient
	Tools  *Toolset
	Store  ContextStore
	Logger *zap.Logger
}

// ContextStore persists conversation history between turns. Only plain text
// survives a turn; tool calls are transient.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	Set(ctx context.Context, sessionID string, history []models.ChatMessage) error
	Clear(ctx context.Context, sessionID string) error
}

// StreamChat executes one conversational turn. Per turn the event order is:
// zero or more thinking events, then tool_start/tool_result pairs keyed by
// call ID, then text events; a terminal error event replaces further text
// when the turn fails.
func (s *DefaultAssistantService) StreamChat(ctx context.Context, req models.ChatRequest, emit EventSink) error {
	history, err := s.Store.Get(ctx, req.SessionID)
	if err != nil {
		s.Logger.Warn("failed to load conversation context", zap.Error(err))
		history = nil
	}

	chat := s.Model.StartChat(historyToContent(history))
	resp, err := chat.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return s.fail(emit, fmt.Errorf("model request failed: %w", err))
	}

	var finalText strings.Builder
	for round := 0; ; round++ {
		if round == maxToolRounds {
			return s.fail(emit, errors.New("tool call limit exceeded for this turn"))
		}

		calls := functionCalls(resp)
		texts := textParts(resp)

		if len(calls) == 0 {
			for _, txt := range texts {
				finalText.WriteString(txt)
				if err := emit(models.StreamEvent{Type: models.EventText, Content: txt}); err != nil {
					return err
				}
			}
			break
		}

		// Commentary accompanying tool calls is surfaced as thinking.
		for _, txt := range texts {
			if err := emit(models.StreamEvent{Type: models.EventThinking, Content: txt}); err != nil {
				return err
			}
		}

		responses := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			callID := uuid.NewString()
			if err := emit(models.StreamEvent{
				Type:   models.EventToolStart,
				CallID: callID,
				Tool:   call.Name,
				Args:   call.Args,
			}); err != nil {
				return err
			}

			result := s.Tools.ExecuteToolCall(ctx, call.Name, call.Args)
			_, failed := result["error"]
			ok := !failed
			if err := emit(models.StreamEvent{
				Type:    models.EventToolResult,
				CallID:  callID,
				Tool:    call.Name,
				Data:    result,
				Success: &ok,
			}); err != nil {
				return err
			}

			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: result,
			})
		}

		resp, err = chat.SendMessage(ctx, responses...)
		if err != nil {
			return s.fail(emit, fmt.Errorf("model request failed: %w", err))
		}
	}

	s.saveHistory(ctx, req, history, finalText.String())
	return nil
}

// fail emits the terminal error event and reports the underlying cause.
func (s *DefaultAssistantService) fail(emit EventSink, cause error) error {
	s.Logger.Error("assistant turn failed", zap.Error(cause))
	if err := emit(models.StreamEvent{
		Type:    models.EventError,
		Message: "Sorry, I encountered an error. Please try again.",
	}); err != nil {
		return err
	}
	return cause
}

func (s *DefaultAssistantService) saveHistory(ctx context.Context, req models.ChatRequest, history []models.ChatMessage, answer string) {
	history = append(history,
		models.ChatMessage{Role: "user", Content: req.Message},
		models.ChatMessage{Role: "model", Content: answer},
	)
	if err := s.Store.Set(ctx, req.SessionID, history); err != nil {
		s.Logger.Warn("failed to save conversation context", zap.Error(err))
	}
}

func historyToContent(history []models.ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		out = append(out, &genai.Content{
			Role:  m.Role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return out
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, part := range candidateParts(resp) {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func textParts(resp *genai.GenerateContentResponse) []string {
	var texts []string
	for _, part := range candidateParts(resp) {
		if txt, ok := part.(genai.Text); ok && string(txt) != "" {
			texts = append(texts, string(txt))
		}
	}
	return texts
}

func candidateParts(resp *genai.GenerateContentResponse) []genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}
