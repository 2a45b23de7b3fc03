package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

// GeminiDraftClient generates alert drafts using the Google Gemini API.
type GeminiDraftClient struct {
	client        *genai.Client
	modelName     string
	maxTokens     int32
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	parser        *utils.ResponseParser
}

// NewGeminiDraftClient creates a new Gemini-backed draft client.
func NewGeminiDraftClient(
	client *genai.Client,
	modelName string,
	maxTokens int32,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiDraftClient {
	return &GeminiDraftClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		parser:        utils.NewResponseParser(logger),
	}
}

// GenerateDraft builds the prompt for the request family, calls the model and
// decodes the JSON draft from the response text.
func (c *GeminiDraftClient) GenerateDraft(ctx context.Context, req *core.DraftRequest) (*core.DraftResult, error) {
	capped := *req
	capped.BodyText = c.textProcessor.ProcessText(req.BodyText, c.maxBodySize)
	prompt := core.BuildPrompt(&capped)

	model := c.client.GenerativeModel(c.modelName)
	model.SetMaxOutputTokens(c.maxTokens)
	model.SetTemperature(c.temperature)
	model.SetTopP(c.topP)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates returned")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}

	result := &core.DraftResult{}
	outcome := c.parser.Decode(text, result)
	if outcome == utils.ParseEmpty {
		c.logger.Warn("model returned no parseable draft",
			zap.String("model", c.modelName),
			zap.String("family", string(req.Family)))
	}

	result.ModelUsed = c.modelName
	result.GeneratedAt = time.Now()
	return result, nil
}

// Close releases the underlying API client.
func (c *GeminiDraftClient) Close() error {
	return c.client.Close()
}
