package di

import (
	"context"
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/adapters/ledger"
	"github.com/abra-it/alert-triage/internal/config"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/factory"
	"github.com/abra-it/alert-triage/internal/logging"
	"github.com/abra-it/alert-triage/internal/mailparse"
	"github.com/abra-it/alert-triage/internal/roster"
	"github.com/abra-it/alert-triage/internal/triage"
	"github.com/abra-it/alert-triage/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// LLM provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Triage flags
	ResellerAccountID string
	RosterPath        string

	// Input flags
	ReportPath string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// LLM provider flags
	flag.StringVar(&flags.Provider, "provider", "bedrock", "LLM provider (bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 2000, "Maximum tokens for LLM response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for LLM generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for LLM generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 8000, "Maximum email body size to send to LLM")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-3-5-sonnet-20240620-v1:0", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-1.5-flash", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4o-mini", "OpenAI model name")

	// Triage flags
	flag.StringVar(&flags.ResellerAccountID, "reseller-account", "262674733103", "Payer account ID whose digests bundle multiple member accounts")
	flag.StringVar(&flags.RosterPath, "roster", "", "Path to the account roster CSV")

	// Input flags
	flag.StringVar(&flags.ReportPath, "report", "", "Write an HTML report of the generated cards to this file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register mail parsing helpers
	if err := container.Provide(func(logger *zap.Logger, processor *utils.TextProcessor) *mailparse.BodyNormalizer {
		return mailparse.NewBodyNormalizer(logger, processor)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(mailparse.NewMetadataRecovery); err != nil {
		return nil, err
	}

	// Register account roster
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) core.Roster {
		return roster.New(flags.RosterPath, logger)
	}); err != nil {
		return nil, err
	}

	// Register drafting client
	if err := container.Provide(func(f *factory.LLMFactory) (core.DraftClient, error) {
		return f.CreateDraftClient(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register triage service with an in-memory ledger
	if err := container.Provide(func(
		normalizer *mailparse.BodyNormalizer,
		recovery *mailparse.MetadataRecovery,
		draftClient core.DraftClient,
		accounts core.Roster,
		logger *zap.Logger,
		flags *CLIFlags,
	) *triage.Service {
		return triage.NewService(
			normalizer,
			recovery,
			draftClient,
			ledger.NewMemoryLedger(logger),
			accounts,
			logger,
			flags.ResellerAccountID,
			false, // Ledger export disabled for one-shot runs
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("source.type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	// Set triage configuration
	v.Set("triage.reseller_account_id", flags.ResellerAccountID)
	v.Set("roster.path", flags.RosterPath)

	return config.NewFromViper(v)
}
