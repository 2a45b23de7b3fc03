package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/mailparse"
)

// Placeholder values for accounts missing from the roster. Processing
// continues with these rather than aborting the run.
const (
	UnknownAccountName = "Unknown"
	DefaultPOCName     = "Customer"
)

// Roster is a read-mostly lookup table of account metadata. The table is an
// immutable snapshot behind an atomic pointer: Reload swaps the whole map,
// so readers never observe partial state and need no locking.
type Roster struct {
	snapshot atomic.Pointer[map[string]core.AccountRecord]
	path     string
	logger   *zap.Logger
}

// New creates a Roster backed by a CSV file and performs the initial load.
// A missing or unreadable file leaves the roster empty; every account then
// resolves to placeholder values.
func New(path string, logger *zap.Logger) *Roster {
	r := &Roster{path: path, logger: logger}
	empty := map[string]core.AccountRecord{}
	r.snapshot.Store(&empty)

	if err := r.Reload(); err != nil {
		logger.Warn("Account roster unavailable, continuing with empty map",
			zap.String("path", path),
			zap.Error(err))
	}
	return r
}

// Reload replaces the whole snapshot from the backing file. The previous
// snapshot stays visible until the new one is complete.
func (r *Roster) Reload() error {
	if r.path == "" {
		return nil
	}
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return err
	}

	r.snapshot.Store(&records)
	r.logger.Info("Account roster loaded",
		zap.String("path", r.path),
		zap.Int("accounts", len(records)))
	return nil
}

// Replace installs a pre-built snapshot. Tests use this to supply fixtures
// without touching the filesystem.
func (r *Roster) Replace(records map[string]core.AccountRecord) {
	copied := make(map[string]core.AccountRecord, len(records))
	for id, rec := range records {
		copied[mailparse.PadAccountID(id)] = rec
	}
	r.snapshot.Store(&copied)
}

// Lookup resolves an account id, zero-padding short ids first.
func (r *Roster) Lookup(accountID string) (core.AccountRecord, bool) {
	snapshot := *r.snapshot.Load()
	rec, ok := snapshot[mailparse.PadAccountID(accountID)]
	return rec, ok
}

// Resolve returns the display name and POC for an account, substituting
// placeholders for unknown accounts.
func (r *Roster) Resolve(accountID string) (name, poc string) {
	if rec, ok := r.Lookup(accountID); ok {
		return rec.AccountName, rec.POCName
	}
	return UnknownAccountName, DefaultPOCName
}

// Len reports the number of loaded accounts.
func (r *Roster) Len() int {
	return len(*r.snapshot.Load())
}

// ExportCSV writes the current snapshot as CSV, sorted by account id.
func (r *Roster) ExportCSV(w io.Writer) error {
	snapshot := *r.snapshot.Load()
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Account ID", "Account Name", "Customer", "Operations Email", "POC Name"}); err != nil {
		return err
	}
	for _, id := range ids {
		rec := snapshot[id]
		if err := cw.Write([]string{id, rec.AccountName, rec.Customer, rec.OperationsEmail, rec.POCName}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseCSV reads roster rows with the columns Account, Account Name,
// Operations Email, POC name. Header matching is case-insensitive; rows
// without a usable account id are skipped.
func parseCSV(r io.Reader) (map[string]core.AccountRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make(map[string]core.AccountRecord)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row: %w", err)
		}

		id := mailparse.PadAccountID(field(row, "account"))
		if id == "" {
			continue
		}

		rec := core.AccountRecord{
			AccountID:       id,
			AccountName:     field(row, "account name"),
			OperationsEmail: field(row, "operations email"),
			POCName:         field(row, "poc name"),
			Customer:        field(row, "customer"),
		}
		if rec.Customer == "" {
			rec.Customer = rec.AccountName
		}
		records[id] = rec
	}

	return records, nil
}
