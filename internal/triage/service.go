package triage

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/classify"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/extract"
	"github.com/abra-it/alert-triage/internal/mailparse"
	"github.com/abra-it/alert-triage/internal/split"
)

// Service runs the triage pipeline for one email at a time: normalize,
// recover forwarded metadata, classify, attribute, split, deduplicate,
// extract facts and draft. Nothing in the pipeline is fatal to a batch; a
// failing email yields zero cards and the next email proceeds.
type Service struct {
	normalizer    *mailparse.BodyNormalizer
	recovery      *mailparse.MetadataRecovery
	draftClient   core.DraftClient
	ledger        core.Ledger
	roster        core.Roster
	logger        *zap.Logger
	resellerID    string
	ledgerEnabled bool
}

// NewService creates a new triage service
func NewService(
	normalizer *mailparse.BodyNormalizer,
	recovery *mailparse.MetadataRecovery,
	draftClient core.DraftClient,
	ledger core.Ledger,
	roster core.Roster,
	logger *zap.Logger,
	resellerID string,
	ledgerEnabled bool,
) *Service {
	return &Service{
		normalizer:    normalizer,
		recovery:      recovery,
		draftClient:   draftClient,
		ledger:        ledger,
		roster:        roster,
		logger:        logger,
		resellerID:    resellerID,
		ledgerEnabled: ledgerEnabled,
	}
}

// ProcessEmail runs the pipeline for one email and returns a report card
// per accepted anomaly. Unknown families return no cards and no error.
// Cancellation is honored between per-block iterations; the in-flight block
// always completes.
func (s *Service) ProcessEmail(ctx context.Context, email *core.Email) ([]core.ReportCard, error) {
	classification := classify.Classify(email.FromAddress, email.Subject)
	if classification.Family == core.FamilyUnknown {
		s.logger.Debug("Skipping unclassified email",
			zap.String("email_id", email.ID),
			zap.String("subject", email.Subject))
		return nil, nil
	}

	body := s.normalizer.Normalize(email)

	// Forwarded alerts carry the original headers in the body; recovered
	// fields overlay the envelope ones, absent fields keep the envelope.
	effective := *email
	effective.BodyText = body
	if meta := s.recovery.Recover(body); meta.Found() {
		s.logger.Debug("Recovered forwarded metadata", zap.String("email_id", email.ID))
		if meta.FromName != "" {
			effective.FromName = meta.FromName
		}
		if meta.FromAddress != "" {
			effective.FromAddress = meta.FromAddress
		}
		if meta.Date != "" {
			effective.Date = meta.Date
		}
		if meta.Subject != "" {
			effective.Subject = meta.Subject
		}
	}

	accountID := mailparse.FindAccountID(effective.Subject, body)
	accountName, pocName := s.resolve(accountID)

	s.logger.Info("Processing alert email",
		zap.String("email_id", email.ID),
		zap.String("family", string(classification.Family)),
		zap.String("account_id", accountID),
		zap.String("account_name", accountName))

	if classification.Family == core.FamilyCostAnomaly {
		return s.processAnomaly(ctx, &effective, classification, accountID, accountName, pocName)
	}
	return s.processUnsplit(ctx, &effective, classification, accountID, accountName, pocName)
}

// processAnomaly handles the cost-anomaly route: reseller digests split per
// member account, everything else per Start Date marker, both deduplicated.
func (s *Service) processAnomaly(
	ctx context.Context,
	email *core.Email,
	classification core.Classification,
	accountID, accountName, pocName string,
) ([]core.ReportCard, error) {
	var blocks []core.AnomalyBlock
	if accountID != "" && accountID == s.resellerID {
		blocks = split.Deduplicate(split.SplitReseller(email.BodyText))
	} else {
		blocks = split.SplitStandard(email.BodyText, accountID, accountName)
		if len(blocks) > 1 {
			blocks = split.Deduplicate(blocks)
		}
	}

	if len(blocks) == 0 {
		s.logger.Info("No anomaly blocks found", zap.String("email_id", email.ID))
		return nil, nil
	}

	cards := make([]core.ReportCard, 0, len(blocks))
	for i, block := range blocks {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Processing stopped mid-batch",
				zap.String("email_id", email.ID),
				zap.Int("processed_blocks", i))
			return cards, err
		}

		blockName := block.AccountName
		blockPOC := pocName
		if blockName == "" {
			blockName, blockPOC = s.resolve(block.AccountID)
		} else if block.AccountID != accountID {
			_, blockPOC = s.resolve(block.AccountID)
		}

		draft := s.draft(ctx, &core.DraftRequest{
			Family:      classification.Family,
			FromName:    email.FromName,
			FromAddress: email.FromAddress,
			Subject:     email.Subject,
			BodyText:    block.TextBlock,
			AccountID:   block.AccountID,
			AccountName: blockName,
			POCName:     blockPOC,
		})

		facts := extract.Facts(block.TextBlock, classification.Family, block.AccountID, blockName, draft)
		cards = append(cards, core.ReportCard{
			EmailID:        email.ID,
			Classification: classification,
			Facts:          facts,
			Draft:          *draft,
		})
	}

	return cards, nil
}

// processUnsplit handles budget, RI utilization and free-tier alerts, which
// describe a single account and are never split.
func (s *Service) processUnsplit(
	ctx context.Context,
	email *core.Email,
	classification core.Classification,
	accountID, accountName, pocName string,
) ([]core.ReportCard, error) {
	draft := s.draft(ctx, &core.DraftRequest{
		Family:      classification.Family,
		FromName:    email.FromName,
		FromAddress: email.FromAddress,
		Subject:     email.Subject,
		BodyText:    email.BodyText,
		AccountID:   accountID,
		AccountName: accountName,
		POCName:     pocName,
	})

	facts := extract.Facts(email.BodyText, classification.Family, accountID, accountName, draft)
	return []core.ReportCard{{
		EmailID:        email.ID,
		Classification: classification,
		Facts:          facts,
		Draft:          *draft,
	}}, nil
}

// draft calls the drafting provider. A provider failure degrades to an
// empty draft so the card still renders from extracted facts.
func (s *Service) draft(ctx context.Context, req *core.DraftRequest) *core.DraftResult {
	result, err := s.draftClient.GenerateDraft(ctx, req)
	if err != nil {
		s.logger.Error("Draft generation failed",
			zap.String("account_id", req.AccountID),
			zap.String("family", string(req.Family)),
			zap.Error(err))
		return &core.DraftResult{GeneratedAt: time.Now()}
	}
	return result
}

// ExportCard records an accepted card in the tracking ledger. Returns the
// export status and, for master duplicates, the first-sighting timestamp.
func (s *Service) ExportCard(ctx context.Context, card *core.ReportCard, force bool) (core.ExportStatus, string, error) {
	if !s.ledgerEnabled {
		return core.ExportAccepted, "", nil
	}

	facts := card.Facts
	entry := &core.LedgerEntry{
		Timestamp:   time.Now(),
		CompanyName: s.customer(facts.AccountID),
		AccountName: facts.AccountName,
		AccountID:   facts.AccountID,
		StartDate:   facts.Dates.Start,
		EndDate:     facts.Dates.End,
		Region:      first(facts.Regions),
		Services:    strings.Join(facts.Services, ", "),
		UsageType:   first(facts.UsageTypes),
		TotalImpact: facts.Amounts.TotalImpact,
		Status:      "Not yet handled",
	}

	status, existing, err := s.ledger.Export(ctx, entry, force)
	if err != nil {
		return "", "", err
	}
	if status != core.ExportAccepted {
		s.logger.Info("Ledger rejected duplicate anomaly",
			zap.String("account_id", facts.AccountID),
			zap.String("status", string(status)),
			zap.String("first_seen", existing))
	}
	return status, existing, nil
}

// resolve looks up an account in the roster, substituting placeholders for
// unknown accounts.
func (s *Service) resolve(accountID string) (name, poc string) {
	if rec, ok := s.roster.Lookup(accountID); ok {
		return rec.AccountName, rec.POCName
	}
	return "Unknown", "Customer"
}

// customer returns the roster customer name for the ledger's company column.
func (s *Service) customer(accountID string) string {
	if rec, ok := s.roster.Lookup(accountID); ok && rec.Customer != "" {
		return rec.Customer
	}
	return "Unknown"
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
