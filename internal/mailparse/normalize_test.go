package mailparse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/mailparse"
	"github.com/abra-it/alert-triage/internal/utils"
)

func newNormalizer() *mailparse.BodyNormalizer {
	logger := zap.NewNop()
	return mailparse.NewBodyNormalizer(logger, utils.NewTextProcessor(logger))
}

func TestNormalizePrefersPlainText(t *testing.T) {
	email := &core.Email{
		BodyText: "Start Date: 2025-05-01\nRegion: us-east-1",
		BodyHTML: "<p>ignored</p>",
	}
	out := newNormalizer().Normalize(email)
	assert.Equal(t, "Start Date: 2025-05-01\nRegion: us-east-1", out)
}

func TestNormalizeStripsHTML(t *testing.T) {
	email := &core.Email{
		BodyHTML: "<html><head><style>body{color:red}</style>" +
			"<script>alert(1)</script></head>" +
			"<body><p>Start Date: 2025-05-01</p>\n\n<p>Region:   us-east-1</p></body></html>",
	}
	out := newNormalizer().Normalize(email)
	assert.NotContains(t, out, "<p>")
	assert.NotContains(t, out, "alert(1)")
	assert.NotContains(t, out, "color:red")
	assert.Contains(t, out, "Start Date: 2025-05-01")
	assert.Contains(t, out, "Region:")
	assert.NotContains(t, out, "\n\n")
}

func TestNormalizeFallsBackToSnippet(t *testing.T) {
	email := &core.Email{Snippet: "Cost anomaly detected"}
	assert.Equal(t, "Cost anomaly detected", newNormalizer().Normalize(email))
}

func TestNormalizeEmptyEmail(t *testing.T) {
	assert.Equal(t, "", newNormalizer().Normalize(&core.Email{}))
}

func TestNormalizeCapsLength(t *testing.T) {
	email := &core.Email{BodyText: strings.Repeat("a", mailparse.MaxBodyLength+500)}
	out := newNormalizer().Normalize(email)
	assert.LessOrEqual(t, len(out), mailparse.MaxBodyLength)
}
