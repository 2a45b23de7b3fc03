package core

import (
	"context"
)

// DraftClient defines the interface for LLM drafting providers. A provider
// turns a fact bundle into outbound communication drafts; it must never be
// trusted to slice or attribute anomalies itself.
type DraftClient interface {
	// GenerateDraft produces communication drafts for one anomaly block or
	// one unsplit alert body.
	GenerateDraft(ctx context.Context, req *DraftRequest) (*DraftResult, error)
}

// ExportStatus is the outcome of a ledger export attempt.
type ExportStatus string

const (
	ExportAccepted        ExportStatus = "accepted"
	ExportDailyDuplicate  ExportStatus = "daily_duplicate"
	ExportMasterDuplicate ExportStatus = "master_duplicate"
)

// Ledger defines the interface for the deduplicated anomaly tracking ledger.
type Ledger interface {
	// Export appends an entry to the daily and master ledgers. A daily
	// duplicate is always rejected; a master duplicate is rejected unless
	// force is set. The returned timestamp is the first sighting for
	// master duplicates.
	Export(ctx context.Context, entry *LedgerEntry, force bool) (ExportStatus, string, error)

	// ClearDaily empties the daily ledger.
	ClearDaily(ctx context.Context) error
}

// Roster is a read-only snapshot view of the account roster. Lookups must
// tolerate the snapshot being swapped between calls.
type Roster interface {
	// Lookup resolves a 12-digit account id. Short ids are zero-padded
	// before lookup. The second return reports whether the account is known.
	Lookup(accountID string) (AccountRecord, bool)
}

// AlertSource defines the interface for adapters that feed alert emails
// into the triage service.
type AlertSource interface {
	// Start starts the source.
	Start() error

	// Stop stops the source.
	Stop() error
}
