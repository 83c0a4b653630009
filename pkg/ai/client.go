package ai

import (
	"context"
	_ "embed"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	e "nuclight.org/content-planner-bot/pkg/entities"
)

//go:embed prompt_tg.txt
var promptTelegram string

//go:embed prompt_inst.txt
var promptInstagram string

const DefaultModel = openai.GPT4oMini

// Client generates post copy with the OpenAI chat completions API. One
// prompt-completion call per invocation, no streaming, no history.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Generate produces post copy for the topic. The platform picks the prompt
// variant: channel posts and instagram captions differ in tone, structure,
// hashtags and length. The result is sanitized to plain text; generation
// failures are returned as-is so the caller can abort the draft.
func (c *Client) Generate(ctx context.Context, topic, details string, platform e.Platform) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(platform)},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Тема: %s\n\nКонтекст: %s", topic, details)},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return Sanitize(resp.Choices[0].Message.Content), nil
}

func systemPrompt(platform e.Platform) string {
	if platform == e.PlatformInstagram {
		return promptInstagram
	}

	return promptTelegram
}
