package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abra-it/alert-triage/internal/core"
)

func TestRenderCard(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	card := core.ReportCard{
		EmailID: "msg-1",
		Classification: core.Classification{
			Family:     core.FamilyCostAnomaly,
			Label:      "abra-it-done",
			LabelColor: "#16a765",
		},
		Facts: core.StructuredFacts{
			AccountID:   "123456789012",
			AccountName: "Acme Prod",
			Dates:       core.DateRange{Start: "2026-08-01", End: "2026-08-03"},
			Services:    []string{"Amazon EC2", "Amazon S3"},
			Regions:     []string{"us-east-1"},
			Amounts:     core.Amounts{TotalImpact: "$142.50"},
			Family:      core.FamilyCostAnomaly,
		},
		Draft: core.DraftResult{
			Summary:     "EC2 spend spiked in us-east-1.",
			TeamMessage: "Spike driven by new m5.4xlarge fleet.",
			Urgency:     "high",
			ConsoleLink: "https://console.aws.amazon.com/cost-management/home",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderCard(&buf, &card))

	html := buf.String()
	assert.Contains(t, html, "Acme Prod (123456789012)")
	assert.Contains(t, html, "Amazon EC2, Amazon S3")
	assert.Contains(t, html, "$142.50")
	assert.Contains(t, html, "#16a765")
	assert.Contains(t, html, "Urgency: high")
}

func TestRenderCardOmitsEmptySections(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	card := core.ReportCard{
		Classification: core.Classification{
			Family:     core.FamilyUnknown,
			LabelColor: "#cccccc",
		},
		Facts: core.StructuredFacts{AccountID: "000000000042"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderCard(&buf, &card))

	html := buf.String()
	assert.NotContains(t, html, "Total impact")
	assert.NotContains(t, html, "Urgency:")
}

func TestRenderCardFreeTierProducts(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	card := core.ReportCard{
		Classification: core.Classification{
			Family:     core.FamilyFreeTier,
			Label:      "freetier",
			LabelColor: "#00bcd4",
		},
		Facts: core.StructuredFacts{AccountID: "123456789012"},
		Draft: core.DraftResult{
			Products: []core.FreeTierProduct{
				{
					ProductName:       "AWS Lambda",
					CurrentUsageValue: 850000,
					CurrentUsageUnit:  "requests",
					LimitValue:        1000000,
					UsagePercent:      85,
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderCard(&buf, &card))

	html := buf.String()
	assert.Contains(t, html, "AWS Lambda")
	assert.Contains(t, html, "85.0%")
}

func TestRenderCardsConcatenates(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	cards := []core.ReportCard{
		{Classification: core.Classification{Label: "first"}},
		{Classification: core.Classification{Label: "second"}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderCards(&buf, cards))

	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}
