package roster_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/roster"
)

const rosterCSV = `Account,Account Name,Operations Email,POC name
111122223333,Acme Ltd,ops@acme.example,Dana
12345678,Globex Corp,ops@globex.example,Sam
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRosterLoadAndLookup(t *testing.T) {
	r := roster.New(writeRoster(t, rosterCSV), zap.NewNop())
	require.Equal(t, 2, r.Len())

	rec, ok := r.Lookup("111122223333")
	require.True(t, ok)
	assert.Equal(t, "Acme Ltd", rec.AccountName)
	assert.Equal(t, "Dana", rec.POCName)
	assert.Equal(t, "Acme Ltd", rec.Customer)
}

func TestRosterZeroPadsShortIDs(t *testing.T) {
	r := roster.New(writeRoster(t, rosterCSV), zap.NewNop())

	// Stored under the padded key, found via short or padded id.
	rec, ok := r.Lookup("12345678")
	require.True(t, ok)
	assert.Equal(t, "Globex Corp", rec.AccountName)
	assert.Equal(t, "000012345678", rec.AccountID)

	_, ok = r.Lookup("000012345678")
	assert.True(t, ok)
}

func TestRosterMissingFileYieldsPlaceholders(t *testing.T) {
	r := roster.New(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())
	assert.Equal(t, 0, r.Len())

	name, poc := r.Resolve("111122223333")
	assert.Equal(t, roster.UnknownAccountName, name)
	assert.Equal(t, roster.DefaultPOCName, poc)
}

func TestRosterReloadReplacesWholesale(t *testing.T) {
	path := writeRoster(t, rosterCSV)
	r := roster.New(path, zap.NewNop())
	require.Equal(t, 2, r.Len())

	next := "Account,Account Name,Operations Email,POC name\n" +
		"777788889999,Initech,ops@initech.example,Lee\n"
	require.NoError(t, os.WriteFile(path, []byte(next), 0o644))
	require.NoError(t, r.Reload())

	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup("111122223333")
	assert.False(t, ok)
	name, poc := r.Resolve("777788889999")
	assert.Equal(t, "Initech", name)
	assert.Equal(t, "Lee", poc)
}

func TestRosterReplaceFixture(t *testing.T) {
	r := roster.New("", zap.NewNop())
	r.Replace(map[string]core.AccountRecord{
		"42": {AccountID: "000000000042", AccountName: "Answer Inc", POCName: "Zed"},
	})

	rec, ok := r.Lookup("000000000042")
	require.True(t, ok)
	assert.Equal(t, "Answer Inc", rec.AccountName)
}

func TestRosterExportCSV(t *testing.T) {
	r := roster.New(writeRoster(t, rosterCSV), zap.NewNop())
	var buf bytes.Buffer
	require.NoError(t, r.ExportCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "Account ID,Account Name,Customer,Operations Email,POC Name")
	assert.Contains(t, out, "000012345678,Globex Corp,Globex Corp,ops@globex.example,Sam")
	assert.Contains(t, out, "111122223333,Acme Ltd,Acme Ltd,ops@acme.example,Dana")
}
