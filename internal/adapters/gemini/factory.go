package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/abra-it/alert-triage/internal/config"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

// Factory creates Gemini draft clients.
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Gemini factory.
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new Gemini draft client from configuration.
func (f *Factory) CreateClient(ctx context.Context) (core.DraftClient, error) {
	geminiCfg := f.cfg.GetGemini()

	client, err := genai.NewClient(ctx, option.WithAPIKey(geminiCfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewGeminiDraftClient(
		client,
		geminiCfg.Model,
		int32(geminiCfg.MaxTokens),
		float32(geminiCfg.Temperature),
		float32(geminiCfg.TopP),
		geminiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
