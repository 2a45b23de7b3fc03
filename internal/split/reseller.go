package split

import (
	"regexp"
	"strings"

	"github.com/abra-it/alert-triage/internal/core"
)

// Window constants for locating the account-specific detail block around a
// member anchor. Empirically tuned against vendor digests; they are
// tie-breaks, not load-bearing structure.
const (
	serviceLookback = 200
	impactLookahead = 400
	defaultForward  = 200
)

var (
	memberAnchorRe = regexp.MustCompile(`Member Account:\s*(\d{12})\s*\(([^)]+)\)`)
	rowAnchorRe    = regexp.MustCompile(`Start Date:[^\n]+\n(?:Last Detected Date:[^\n]+\n)?(?:Duration:[^\n]+\n)?(?:Max Daily Impact:[^\n]+\n)?(?:Total Impact:[^\n]+\n)?`)
	serviceLineRe  = regexp.MustCompile(`AWS Service:\s*[^\n]+`)
	impactAmountRe = regexp.MustCompile(`Impact Contribution:\s*\$[\d.,]+`)
	monitorBlockRe = regexp.MustCompile(`Name:\s*([^\n]+)\n\s*Type:\s*([^\n]+)\n\s*Monitoring:\s*([^\n]+)`)
)

// SplitReseller slices a bundled reseller digest into one block per member
// account. Each block concatenates the shared row context, the
// account-specific detail window, and the row's monitor metadata so it can
// be interpreted without the original body. Zero member anchors yield an
// empty list: nothing to process, not an error.
func SplitReseller(body string) []core.AnomalyBlock {
	members := memberAnchorRe.FindAllStringSubmatchIndex(body, -1)
	if len(members) == 0 {
		return nil
	}

	rows := rowAnchorRe.FindAllStringIndex(body, -1)

	blocks := make([]core.AnomalyBlock, 0, len(members))
	for _, member := range members {
		memberPos := member[0]
		accountID := body[member[2]:member[3]]
		accountName := strings.TrimSpace(body[member[4]:member[5]])

		rowContext, rowStart := rowBefore(body, rows, memberPos)
		accountBlock := accountWindow(body, memberPos)
		rowEnd := nextRowStart(body, rows, memberPos)

		monitorType := "Unknown"
		monitorInfo := ""
		if m := monitorBlockRe.FindStringSubmatch(body[rowStart:rowEnd]); m != nil {
			monitorType = strings.TrimSpace(m[3])
			monitorInfo = "\n\n--- MONITOR INFO ---\nName: " + strings.TrimSpace(m[1]) +
				"\nType: " + strings.TrimSpace(m[2]) +
				"\nMonitoring: " + monitorType
		}

		text := "--- ANOMALY CONTEXT ---\n" + rowContext +
			"\n\n--- ACCOUNT DATA ---\n" + accountBlock + monitorInfo

		blocks = append(blocks, core.AnomalyBlock{
			AccountID:   accountID,
			AccountName: accountName,
			TextBlock:   text,
			MonitorType: monitorType,
		})
	}

	return blocks
}

// rowBefore returns the last row anchor positioned before pos. The row
// context is shared by every member account until the next row begins.
func rowBefore(body string, rows [][]int, pos int) (context string, start int) {
	for _, row := range rows {
		if row[0] >= pos {
			break
		}
		context = strings.TrimSpace(body[row[0]:row[1]])
		start = row[0]
	}
	return context, start
}

// nextRowStart returns the start of the first row anchor after pos, or the
// end of the body.
func nextRowStart(body string, rows [][]int, pos int) int {
	for _, row := range rows {
		if row[0] > pos {
			return row[0]
		}
	}
	return len(body)
}

// accountWindow extracts the account-specific detail block: backward up to
// serviceLookback bytes for an "AWS Service:" line, forward up to
// impactLookahead bytes for an "Impact Contribution:" amount, defaulting to
// a fixed forward window when no impact line is found.
func accountWindow(body string, memberPos int) string {
	start := memberPos
	lookbackFrom := memberPos - serviceLookback
	if lookbackFrom < 0 {
		lookbackFrom = 0
	}
	if loc := serviceLineRe.FindStringIndex(body[lookbackFrom:memberPos]); loc != nil {
		start = lookbackFrom + loc[0]
	}

	lookaheadTo := memberPos + impactLookahead
	if lookaheadTo > len(body) {
		lookaheadTo = len(body)
	}
	end := memberPos + defaultForward
	if loc := impactAmountRe.FindStringIndex(body[memberPos:lookaheadTo]); loc != nil {
		end = memberPos + loc[1]
	}
	if end > len(body) {
		end = len(body)
	}

	return strings.TrimSpace(body[start:end])
}
