package split

import (
	"regexp"
	"strings"

	"github.com/abra-it/alert-triage/internal/core"
)

var (
	anomalyStartRe   = regexp.MustCompile(`Start Date:\s*\d{4}-\d{2}-\d{2}`)
	monitoringLineRe = regexp.MustCompile(`Monitoring:\s*([^\n]+)`)
)

// SplitStandard slices a non-reseller alert body into one block per
// anomaly. Every "Start Date: YYYY-MM-DD" occurrence starts a block that
// ends where the next one begins. A body with no markers is returned whole
// as a single block tagged with the caller-supplied account identity.
func SplitStandard(body, accountID, accountName string) []core.AnomalyBlock {
	starts := anomalyStartRe.FindAllStringIndex(body, -1)
	if len(starts) == 0 {
		return []core.AnomalyBlock{{
			AccountID:   accountID,
			AccountName: accountName,
			TextBlock:   body,
			MonitorType: "Unknown",
		}}
	}

	blocks := make([]core.AnomalyBlock, 0, len(starts))
	for i, start := range starts {
		end := len(body)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		text := strings.TrimSpace(body[start[0]:end])

		monitorType := "Unknown"
		if m := monitoringLineRe.FindStringSubmatch(text); m != nil {
			monitorType = strings.TrimSpace(m[1])
		}

		blocks = append(blocks, core.AnomalyBlock{
			AccountID:   accountID,
			AccountName: accountName,
			TextBlock:   text,
			MonitorType: monitorType,
		})
	}

	return blocks
}
