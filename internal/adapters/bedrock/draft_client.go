package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

const anthropicVersion = "bedrock-2023-05-31"

// BedrockDraftClient generates alert drafts using AWS Bedrock Anthropic models.
type BedrockDraftClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float64
	topP          float64
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	parser        *utils.ResponseParser
}

// NewBedrockDraftClient creates a new Bedrock-backed draft client.
func NewBedrockDraftClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float64,
	topP float64,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockDraftClient {
	return &BedrockDraftClient{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		parser:        utils.NewResponseParser(logger),
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateDraft builds the prompt for the request family, invokes the model
// and decodes the JSON draft from the response text.
func (c *BedrockDraftClient) GenerateDraft(ctx context.Context, req *core.DraftRequest) (*core.DraftResult, error) {
	capped := *req
	capped.BodyText = c.textProcessor.ProcessText(req.BodyText, c.maxBodySize)
	prompt := core.BuildPrompt(&capped)

	payload := anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
		TopP:             c.topP,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	result := &core.DraftResult{}
	outcome := c.parser.Decode(text, result)
	if outcome == utils.ParseEmpty {
		c.logger.Warn("model returned no parseable draft",
			zap.String("model", c.modelID),
			zap.String("family", string(req.Family)))
	}

	result.ModelUsed = c.modelID
	result.GeneratedAt = time.Now()
	return result, nil
}
