package split_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abra-it/alert-triage/internal/split"
)

const twoAnomalyBody = `Anomaly details below.
Start Date: 2025-05-01
Last Detected Date: 2025-05-02
Region: us-east-1
AWS Service: Amazon Simple Storage Service
Usage Type: DataTransfer-Out-Bytes
Impact Contribution: $120.50
Monitoring: Service monitor
Start Date: 2025-05-03
Region: eu-west-1
AWS Service: Amazon EC2
Usage Type: BoxUsage:t3.large
Impact Contribution: $80.00
Monitoring: Account monitor
`

func TestSplitStandardOneBlockPerMarker(t *testing.T) {
	blocks := split.SplitStandard(twoAnomalyBody, "111122223333", "Acme")
	require.Len(t, blocks, 2)

	for _, b := range blocks {
		assert.Equal(t, "111122223333", b.AccountID)
		assert.Equal(t, "Acme", b.AccountName)
		assert.True(t, strings.HasPrefix(b.TextBlock, "Start Date:"))
	}
	assert.Contains(t, blocks[0].TextBlock, "us-east-1")
	assert.NotContains(t, blocks[0].TextBlock, "eu-west-1")
	assert.Contains(t, blocks[1].TextBlock, "eu-west-1")
	assert.Equal(t, "Service monitor", blocks[0].MonitorType)
	assert.Equal(t, "Account monitor", blocks[1].MonitorType)
}

func TestSplitStandardCoversBodyInOrder(t *testing.T) {
	blocks := split.SplitStandard(twoAnomalyBody, "111122223333", "Acme")
	require.Len(t, blocks, 2)

	// Blocks appear in body order with no overlap: each block's start
	// position is past the end of the previous one.
	prevEnd := 0
	for _, b := range blocks {
		pos := strings.Index(twoAnomalyBody[prevEnd:], b.TextBlock)
		require.GreaterOrEqual(t, pos, 0)
		prevEnd += pos + len(b.TextBlock)
	}
}

func TestSplitStandardNoMarkersReturnsWholeBody(t *testing.T) {
	body := "Your budget has exceeded the threshold.\nBudgeted: $100\n"
	blocks := split.SplitStandard(body, "444455556666", "Globex")
	require.Len(t, blocks, 1)
	assert.Equal(t, body, blocks[0].TextBlock)
	assert.Equal(t, "444455556666", blocks[0].AccountID)
	assert.Equal(t, "Unknown", blocks[0].MonitorType)
}

func TestSplitStandardIgnoresMalformedDates(t *testing.T) {
	body := "Start Date: soon\nRegion: us-east-1\n"
	blocks := split.SplitStandard(body, "1", "x")
	require.Len(t, blocks, 1)
	assert.Equal(t, body, blocks[0].TextBlock)
}
