package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
)

// MemoryLedger is an in-memory implementation of the Ledger interface,
// used for tests and ad hoc runs where no file should be written.
type MemoryLedger struct {
	daily  []core.LedgerEntry
	master []core.LedgerEntry
	mu     sync.Mutex
	logger *zap.Logger
}

// NewMemoryLedger creates a new in-memory ledger
func NewMemoryLedger(logger *zap.Logger) *MemoryLedger {
	return &MemoryLedger{logger: logger}
}

// Export appends an entry to the daily and master ledgers, applying the
// duplicate policy: a daily duplicate always blocks, a master duplicate
// blocks unless force is set.
func (l *MemoryLedger) Export(ctx context.Context, entry *core.LedgerEntry, force bool) (core.ExportStatus, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if firstSeen := findDuplicate(l.daily, entry); firstSeen != "" {
		return core.ExportDailyDuplicate, firstSeen, nil
	}
	if firstSeen := findDuplicate(l.master, entry); firstSeen != "" && !force {
		return core.ExportMasterDuplicate, firstSeen, nil
	}

	l.daily = append(l.daily, *entry)
	l.master = append(l.master, *entry)
	return core.ExportAccepted, "", nil
}

// ClearDaily empties the daily ledger.
func (l *MemoryLedger) ClearDaily(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.daily = nil
	return nil
}

// Daily returns a copy of the daily entries, newest last.
func (l *MemoryLedger) Daily() []core.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.LedgerEntry(nil), l.daily...)
}

// Master returns a copy of the master entries, newest last.
func (l *MemoryLedger) Master() []core.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.LedgerEntry(nil), l.master...)
}

// findDuplicate returns the first-sighting timestamp of a matching entry,
// or "" when none matches. Identity is account, region, services, usage
// type, start date and impact.
func findDuplicate(entries []core.LedgerEntry, entry *core.LedgerEntry) string {
	for i := range entries {
		e := &entries[i]
		if e.AccountID == entry.AccountID &&
			e.Region == entry.Region &&
			e.Services == entry.Services &&
			e.UsageType == entry.UsageType &&
			e.StartDate == entry.StartDate &&
			e.TotalImpact == entry.TotalImpact {
			return e.Timestamp.Format("2006-01-02 15:04:05")
		}
	}
	return ""
}
