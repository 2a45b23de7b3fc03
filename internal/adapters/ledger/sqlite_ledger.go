package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
)

// SQLiteLedger is a SQLite implementation of the Ledger interface. The
// daily and master scopes are rows of one table distinguished by scope, so
// clearing the daily ledger is a single delete.
type SQLiteLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteLedger creates a new SQLite ledger
func NewSQLiteLedger(dbPath string, logger *zap.Logger) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS anomaly_ledger (
			scope TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL,
			company_name TEXT,
			account_name TEXT,
			account_id TEXT NOT NULL,
			start_date TEXT,
			end_date TEXT,
			region TEXT,
			services TEXT,
			usage_type TEXT,
			total_impact TEXT,
			status TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ledger_identity
		ON anomaly_ledger(scope, account_id, region, usage_type, start_date)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger index: %w", err)
	}

	return &SQLiteLedger{db: db, logger: logger}, nil
}

// Export appends an entry to both ledger scopes after the duplicate checks.
func (l *SQLiteLedger) Export(ctx context.Context, entry *core.LedgerEntry, force bool) (core.ExportStatus, string, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	firstSeen, err := l.findDuplicate(ctx, "daily", entry)
	if err != nil {
		return "", "", err
	}
	if firstSeen != "" {
		return core.ExportDailyDuplicate, firstSeen, nil
	}

	firstSeen, err = l.findDuplicate(ctx, "master", entry)
	if err != nil {
		return "", "", err
	}
	if firstSeen != "" && !force {
		return core.ExportMasterDuplicate, firstSeen, nil
	}

	for _, scope := range []string{"daily", "master"} {
		_, err = l.db.ExecContext(ctx, `
			INSERT INTO anomaly_ledger
			(scope, recorded_at, company_name, account_name, account_id,
			 start_date, end_date, region, services, usage_type, total_impact, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, scope, entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.CompanyName, entry.AccountName, entry.AccountID,
			entry.StartDate, entry.EndDate, entry.Region,
			entry.Services, entry.UsageType, entry.TotalImpact, entry.Status)
		if err != nil {
			return "", "", fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}

	return core.ExportAccepted, "", nil
}

// ClearDaily empties the daily scope.
func (l *SQLiteLedger) ClearDaily(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM anomaly_ledger WHERE scope = 'daily'`)
	if err != nil {
		return fmt.Errorf("failed to clear daily ledger: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

func (l *SQLiteLedger) findDuplicate(ctx context.Context, scope string, entry *core.LedgerEntry) (string, error) {
	var firstSeen string
	err := l.db.QueryRowContext(ctx, `
		SELECT recorded_at FROM anomaly_ledger
		WHERE scope = ? AND account_id = ? AND region = ? AND services = ?
		  AND usage_type = ? AND start_date = ? AND total_impact = ?
		ORDER BY recorded_at LIMIT 1
	`, scope, entry.AccountID, entry.Region, entry.Services,
		entry.UsageType, entry.StartDate, entry.TotalImpact).Scan(&firstSeen)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check ledger duplicate: %w", err)
	}
	return firstSeen, nil
}
