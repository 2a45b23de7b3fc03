package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/config"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/factory"
	"github.com/abra-it/alert-triage/internal/logging"
	"github.com/abra-it/alert-triage/internal/mailparse"
	"github.com/abra-it/alert-triage/internal/roster"
	"github.com/abra-it/alert-triage/internal/triage"
	"github.com/abra-it/alert-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLedgerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
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
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *roster.Roster {
		return roster.New(cfg.GetRoster().Path, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *roster.Roster) core.Roster { return r }); err != nil {
		return nil, err
	}

	// Register drafting client
	if err := container.Provide(func(f *factory.LLMFactory) (core.DraftClient, error) {
		return f.CreateDraftClient(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register tracking ledger
	if err := container.Provide(func(f *factory.LedgerFactory) (core.Ledger, error) {
		return f.CreateLedger()
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		normalizer *mailparse.BodyNormalizer,
		recovery *mailparse.MetadataRecovery,
		draftClient core.DraftClient,
		ledger core.Ledger,
		accounts core.Roster,
		logger *zap.Logger,
		cfg *config.Config,
		ledgerFactory *factory.LedgerFactory,
	) *triage.Service {
		return triage.NewService(
			normalizer,
			recovery,
			draftClient,
			ledger,
			accounts,
			logger,
			cfg.GetTriage().ResellerAccountID,
			ledgerFactory.IsLedgerEnabled(),
		)
	}); err != nil {
		return nil, err
	}

	// Register alert source
	if err := container.Provide(func(f *factory.SourceFactory) (core.AlertSource, error) {
		return f.CreateAlertSource()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
