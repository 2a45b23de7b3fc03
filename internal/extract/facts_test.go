package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/extract"
	"github.com/abra-it/alert-triage/internal/split"
)

const anomalyText = `Start Date: 2025-05-01
Last Detected Date: 2025-05-03
AWS Service: Amazon Simple Storage Service
AWS Service: Amazon EC2
AWS Service: Amazon Simple Storage Service
Region: us-east-1
Region: eu-west-1
Usage Type: DataTransfer-Out-Bytes
Total Impact: $1,234.56
`

func TestDates(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{"start and end", anomalyText, "2025-05-01", "2025-05-03"},
		{"end defaults to start", "Start Date: 2025-05-01\n", "2025-05-01", "2025-05-01"},
		{"end date label", "Start Date: 2025-05-01\nEnd Date: 2025-05-02\n", "2025-05-01", "2025-05-02"},
		{"no dates", "Region: us-east-1\n", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := extract.Dates(tt.text)
			assert.Equal(t, tt.start, dates.Start)
			assert.Equal(t, tt.end, dates.End)
		})
	}
}

func TestServicesOrderedUnique(t *testing.T) {
	assert.Equal(t,
		[]string{"Amazon Simple Storage Service", "Amazon EC2"},
		extract.Services(anomalyText))
}

func TestServicesBareFallback(t *testing.T) {
	assert.Equal(t, []string{"Amazon RDS"}, extract.Services("Service: Amazon RDS\n"))
	assert.Empty(t, extract.Services("no services\n"))
}

func TestRegionsAndUsageTypes(t *testing.T) {
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, extract.Regions(anomalyText))
	assert.Equal(t, []string{"DataTransfer-Out-Bytes"}, extract.UsageTypes(anomalyText))
}

func TestAmountsFromBody(t *testing.T) {
	amounts := extract.Amounts(anomalyText, core.FamilyCostAnomaly, nil)
	assert.Equal(t, "$1,234.56", amounts.TotalImpact)
}

func TestAmountsPrefersDraft(t *testing.T) {
	draft := &core.DraftResult{TotalImpactUSD: "$999"}
	amounts := extract.Amounts(anomalyText, core.FamilyCostAnomaly, draft)
	assert.Equal(t, "$999", amounts.TotalImpact)

	draft.TotalImpactUSD = "Unknown"
	amounts = extract.Amounts(anomalyText, core.FamilyCostAnomaly, draft)
	assert.Equal(t, "$1,234.56", amounts.TotalImpact)
}

func TestAmountsBudgetFamily(t *testing.T) {
	draft := &core.DraftResult{
		BudgetDetails: &core.BudgetDetails{
			BudgetedAmount:     "$500",
			ActualAmount:       "$620",
			Threshold:          "80%",
			UtilizationPercent: "124%",
		},
	}
	amounts := extract.Amounts("budget alert body", core.FamilyBudget, draft)
	assert.Equal(t, "$500", amounts.Budgeted)
	assert.Equal(t, "$620", amounts.Actual)
	assert.Equal(t, "80%", amounts.Threshold)
	assert.Equal(t, "124%", amounts.UtilizationPercent)
}

// A block produced by the standard splitter must re-derive the same date
// range, region and usage type that keyed it during deduplication.
func TestFactsRoundTripWithSplitter(t *testing.T) {
	body := "intro\n" + anomalyText + "Impact Contribution: $42.00\n"
	blocks := split.SplitStandard(body, "111122223333", "Acme")
	require.Len(t, blocks, 1)
	deduped := split.Deduplicate(blocks)
	require.Len(t, deduped, 1)

	facts := extract.Facts(deduped[0].TextBlock, core.FamilyCostAnomaly, "111122223333", "Acme", nil)
	assert.Equal(t, core.DateRange{Start: "2025-05-01", End: "2025-05-03"}, facts.Dates)
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, facts.Regions)
	assert.Equal(t, []string{"DataTransfer-Out-Bytes"}, facts.UsageTypes)
	assert.Equal(t, "111122223333", facts.AccountID)
}
