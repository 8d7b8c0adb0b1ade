package llm

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the single collaborator contract the pipeline has with the
// external model service: one prompt in, one reply out.  It is treated
// as opaque and non-deterministic; callers perform exactly one attempt
// and surface any failure without retrying.
type Client interface {
	Invoke(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// systemMessage frames every completion request, independent of the
// task-specific prompt carried in the user message.
const systemMessage = "You are a helpful, cautious medical-style assistant."

// HFClient calls a chat-completion model through the Hugging Face
// router's OpenAI-compatible API.  It holds only connection and
// credential configuration, no per-request state, so a single instance
// is safe for concurrent reuse across many in-flight requests.
type HFClient struct {
	client *openai.Client
	model  string
}

// NewHFClient constructs a Hugging Face-backed LLM client.  baseURL
// points at the OpenAI-compatible endpoint; httpClient carries the
// network timeout and may be nil for the default.
func NewHFClient(apiKey, model, baseURL string, httpClient *http.Client) *HFClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &HFClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Invoke sends the prompt as a system+user message pair and returns the
// assistant's reply as a plain string.
func (c *HFClient) Invoke(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
