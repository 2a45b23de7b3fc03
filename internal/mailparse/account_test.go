package mailparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abra-it/alert-triage/internal/mailparse"
)

func TestExtractAccountID(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"dashed grouping", "Account: 123-456-789-012", "123456789012"},
		{"spaced grouping", "Account 123 456 789 012 flagged", "123456789012"},
		{"bare digits", "id 123456789012 embedded", "123456789012"},
		{"no ids", "no ids here", ""},
		{"too short", "id 12345678 only", ""},
		{"empty", "", ""},
		{"first match wins", "123456789012 then 999999999999", "123456789012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mailparse.ExtractAccountID(tt.text))
		})
	}
}

func TestFindAccountIDPrefersSubject(t *testing.T) {
	subject := "Cost anomaly for account 111122223333"
	body := "Member Account: 444455556666"
	assert.Equal(t, "111122223333", mailparse.FindAccountID(subject, body))
	assert.Equal(t, "444455556666", mailparse.FindAccountID("no id", body))
	assert.Equal(t, "", mailparse.FindAccountID("no id", "none either"))
}

func TestPadAccountID(t *testing.T) {
	assert.Equal(t, "000012345678", mailparse.PadAccountID("12345678"))
	assert.Equal(t, "123456789012", mailparse.PadAccountID("123456789012"))
	assert.Equal(t, "", mailparse.PadAccountID("  "))
}
