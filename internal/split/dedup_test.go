package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/split"
)

func block(account, region, usage, impact string) core.AnomalyBlock {
	text := "Start Date: 2025-05-01\n"
	if region != "" {
		text += "Region: " + region + "\n"
	}
	if usage != "" {
		text += "Usage Type: " + usage + "\n"
	}
	if impact != "" {
		text += "Impact Contribution: $" + impact + "\n"
	}
	return core.AnomalyBlock{
		AccountID:   account,
		AccountName: "Acme",
		TextBlock:   text,
		MonitorType: "AWS Services",
	}
}

func TestDeduplicateKeepsHighestImpact(t *testing.T) {
	in := []core.AnomalyBlock{
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "120.50"),
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "1,300.00"),
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "90.00"),
	}

	out := split.Deduplicate(in)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].TextBlock, "$1,300.00")
}

func TestDeduplicateDistinctKeysSurvive(t *testing.T) {
	in := []core.AnomalyBlock{
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "10.00"),
		block("111122223333", "eu-west-1", "DataTransfer-Out-Bytes", "10.00"),
		block("111122223333", "us-east-1", "BoxUsage:t3.large", "10.00"),
		block("444455556666", "us-east-1", "DataTransfer-Out-Bytes", "10.00"),
	}

	out := split.Deduplicate(in)
	assert.Len(t, out, 4)
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []core.AnomalyBlock{
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "120.50"),
		block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "300.00"),
		block("444455556666", "eu-west-1", "BoxUsage:t3.large", "90.00"),
	}

	once := split.Deduplicate(in)
	twice := split.Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateTieKeepsFirst(t *testing.T) {
	first := block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "50.00")
	first.MonitorType = "first"
	second := block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "50.00")
	second.MonitorType = "second"

	out := split.Deduplicate([]core.AnomalyBlock{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].MonitorType)
}

func TestDeduplicateMissingFieldsGroupTogether(t *testing.T) {
	// Blocks without region or usage lines share the empty grouping key;
	// a missing impact line counts as zero.
	in := []core.AnomalyBlock{
		block("111122223333", "", "", ""),
		block("111122223333", "", "", "5.00"),
	}

	out := split.Deduplicate(in)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].TextBlock, "$5.00")
}

func TestDeduplicatePreservesOrderAndFields(t *testing.T) {
	a := block("111122223333", "us-east-1", "DataTransfer-Out-Bytes", "10.00")
	b := block("444455556666", "eu-west-1", "BoxUsage:t3.large", "20.00")
	out := split.Deduplicate([]core.AnomalyBlock{a, b})
	require.Len(t, out, 2)
	assert.Equal(t, a, out[0])
	assert.Equal(t, b, out[1])
}

func TestDeduplicateEmptyAndSingle(t *testing.T) {
	assert.Empty(t, split.Deduplicate(nil))
	one := []core.AnomalyBlock{block("111122223333", "us-east-1", "x", "1.00")}
	assert.Equal(t, one, split.Deduplicate(one))
}
