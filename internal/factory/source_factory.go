package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/adapters/ingest"
	"github.com/abra-it/alert-triage/internal/config"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/triage"
)

// SourceFactory creates alert sources based on configuration
type SourceFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *triage.Service
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger, service *triage.Service) *SourceFactory {
	return &SourceFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateAlertSource creates an alert source based on the configuration
func (f *SourceFactory) CreateAlertSource() (core.AlertSource, error) {
	sourceCfg := f.cfg.GetSource()

	switch sourceCfg.Type {
	case "smtp":
		return ingest.NewSMTPSource(
			f.service,
			f.logger,
			sourceCfg.ListenAddress,
			sourceCfg.ProcessTimeout,
			sourceCfg.AutoExport,
		), nil
	case "cli":
		return ingest.NewCliSource(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceCfg.Type)
	}
}
