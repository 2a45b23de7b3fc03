package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

const systemPrompt = "You are an assistant for a cloud cost management team. " +
	"You analyze AWS billing alert emails and respond only with the requested JSON object."

// OpenAIDraftClient generates alert drafts using the OpenAI API.
type OpenAIDraftClient struct {
	client        *openai.Client
	model         string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	parser        *utils.ResponseParser
}

// NewOpenAIDraftClient creates a new OpenAI-backed draft client.
func NewOpenAIDraftClient(
	client *openai.Client,
	model string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIDraftClient {
	return &OpenAIDraftClient{
		client:        client,
		model:         model,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		parser:        utils.NewResponseParser(logger),
	}
}

// GenerateDraft builds the prompt for the request family, calls the chat
// completion endpoint and decodes the JSON draft from the response.
func (c *OpenAIDraftClient) GenerateDraft(ctx context.Context, req *core.DraftRequest) (*core.DraftResult, error) {
	capped := *req
	capped.BodyText = c.textProcessor.ProcessText(req.BodyText, c.maxBodySize)
	prompt := core.BuildPrompt(&capped)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	result := &core.DraftResult{}
	outcome := c.parser.Decode(resp.Choices[0].Message.Content, result)
	if outcome == utils.ParseEmpty {
		c.logger.Warn("model returned no parseable draft",
			zap.String("model", c.model),
			zap.String("family", string(req.Family)))
	}

	result.ModelUsed = c.model
	result.GeneratedAt = time.Now()
	return result, nil
}
