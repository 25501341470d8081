package assistant

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = `You are the back-office assistant for a hotel. Staff ask you about
bookings, guests, revenue and occupancy, and ask you to update booking records.
Use the provided tools to answer from live hotel data; never invent numbers.
When a tool returns an error, explain the problem briefly and suggest what the
user can do. Keep answers short and concrete. Save noteworthy findings with
save_insight so they can be recalled later.`

// ModelClient abstracts the language model so the session controller can be
// exercised without the network.
type ModelClient interface {
	StartChat(history []*genai.Content) ModelChat
}

// ModelChat is one model conversation; SendMessage blocks until the model
// responds.
type ModelChat interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient is the production ModelClient backed by the Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient builds a Gemini-backed model client with the toolset's
// function declarations attached.
func NewGeminiClient(apiKey, modelName string, tools []*genai.FunctionDeclaration) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.Tools = []*genai.Tool{{FunctionDeclarations: tools}}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	return &GeminiClient{model: model}, nil
}

func (g *GeminiClient) StartChat(history []*genai.Content) ModelChat {
	cs := g.model.StartChat()
	cs.History = history
	return &geminiChat{cs: cs}
}

type geminiChat struct {
	cs *genai.ChatSession
}

func (c *geminiChat) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	resp, err := c.cs.SendMessage(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return resp, nil
}
