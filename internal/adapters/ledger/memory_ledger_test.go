package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/adapters/ledger"
	"github.com/abra-it/alert-triage/internal/core"
)

func entry() *core.LedgerEntry {
	return &core.LedgerEntry{
		Timestamp:   time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		CompanyName: "Acme Ltd",
		AccountName: "Acme Ltd",
		AccountID:   "111122223333",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-02",
		Region:      "us-east-1",
		Services:    "Amazon Simple Storage Service",
		UsageType:   "DataTransfer-Out-Bytes",
		TotalImpact: "$340.00",
		Status:      "Not yet handled",
	}
}

func TestMemoryLedgerExportAndDailyDuplicate(t *testing.T) {
	l := ledger.NewMemoryLedger(zap.NewNop())
	ctx := context.Background()

	status, _, err := l.Export(ctx, entry(), false)
	require.NoError(t, err)
	assert.Equal(t, core.ExportAccepted, status)
	assert.Len(t, l.Daily(), 1)
	assert.Len(t, l.Master(), 1)

	status, firstSeen, err := l.Export(ctx, entry(), false)
	require.NoError(t, err)
	assert.Equal(t, core.ExportDailyDuplicate, status)
	assert.Equal(t, "2025-05-01 09:00:00", firstSeen)
	assert.Len(t, l.Master(), 1)
}

func TestMemoryLedgerMasterDuplicateAndForce(t *testing.T) {
	l := ledger.NewMemoryLedger(zap.NewNop())
	ctx := context.Background()

	_, _, err := l.Export(ctx, entry(), false)
	require.NoError(t, err)
	require.NoError(t, l.ClearDaily(ctx))

	// Still in master: warned unless forced.
	status, firstSeen, err := l.Export(ctx, entry(), false)
	require.NoError(t, err)
	assert.Equal(t, core.ExportMasterDuplicate, status)
	assert.NotEmpty(t, firstSeen)

	status, _, err = l.Export(ctx, entry(), true)
	require.NoError(t, err)
	assert.Equal(t, core.ExportAccepted, status)
	assert.Len(t, l.Master(), 2)
}

func TestMemoryLedgerDistinctIdentities(t *testing.T) {
	l := ledger.NewMemoryLedger(zap.NewNop())
	ctx := context.Background()

	_, _, err := l.Export(ctx, entry(), false)
	require.NoError(t, err)

	other := entry()
	other.Region = "eu-west-1"
	status, _, err := l.Export(ctx, other, false)
	require.NoError(t, err)
	assert.Equal(t, core.ExportAccepted, status)

	higher := entry()
	higher.TotalImpact = "$999.00"
	status, _, err = l.Export(ctx, higher, false)
	require.NoError(t, err)
	assert.Equal(t, core.ExportAccepted, status)

	assert.Len(t, l.Daily(), 3)
}
