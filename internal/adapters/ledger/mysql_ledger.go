package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
)

// MySQLLedger is a MySQL implementation of the Ledger interface for teams
// sharing one tracking ledger across operators.
type MySQLLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLLedger creates a new MySQL ledger
func NewMySQLLedger(dsn string, logger *zap.Logger) (*MySQLLedger, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS anomaly_ledger (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			scope VARCHAR(16) NOT NULL,
			recorded_at DATETIME NOT NULL,
			company_name VARCHAR(255),
			account_name VARCHAR(255),
			account_id VARCHAR(12) NOT NULL,
			start_date VARCHAR(10),
			end_date VARCHAR(10),
			region VARCHAR(64),
			services TEXT,
			usage_type VARCHAR(255),
			total_impact VARCHAR(32),
			status VARCHAR(64),
			INDEX idx_ledger_identity (scope, account_id, region, usage_type, start_date)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger table: %w", err)
	}

	return &MySQLLedger{db: db, logger: logger}, nil
}

// Export appends an entry to both ledger scopes after the duplicate checks.
func (l *MySQLLedger) Export(ctx context.Context, entry *core.LedgerEntry, force bool) (core.ExportStatus, string, error) {
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
		`, scope, entry.Timestamp, entry.CompanyName, entry.AccountName,
			entry.AccountID, entry.StartDate, entry.EndDate, entry.Region,
			entry.Services, entry.UsageType, entry.TotalImpact, entry.Status)
		if err != nil {
			return "", "", fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}

	return core.ExportAccepted, "", nil
}

// ClearDaily empties the daily scope.
func (l *MySQLLedger) ClearDaily(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM anomaly_ledger WHERE scope = 'daily'`)
	if err != nil {
		return fmt.Errorf("failed to clear daily ledger: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (l *MySQLLedger) Close() error {
	return l.db.Close()
}

func (l *MySQLLedger) findDuplicate(ctx context.Context, scope string, entry *core.LedgerEntry) (string, error) {
	var firstSeen time.Time
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
	return firstSeen.Format("2006-01-02 15:04:05"), nil
}
