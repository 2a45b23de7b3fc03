package openai

import (
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/config"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

// Factory creates OpenAI draft clients.
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new OpenAI factory.
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new OpenAI draft client from configuration.
func (f *Factory) CreateClient() (core.DraftClient, error) {
	openaiCfg := f.cfg.GetOpenAI()

	client := openai.NewClient(openaiCfg.APIKey)

	return NewOpenAIDraftClient(
		client,
		openaiCfg.Model,
		openaiCfg.MaxTokens,
		float32(openaiCfg.Temperature),
		float32(openaiCfg.TopP),
		openaiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
