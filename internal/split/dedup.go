package split

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abra-it/alert-triage/internal/core"
)

var (
	regionLineRe   = regexp.MustCompile(`Region:\s*([^\n]+)`)
	usageLineRe    = regexp.MustCompile(`Usage Type:\s*([^\n]+)`)
	contributionRe = regexp.MustCompile(`Impact Contribution:\s*\$([0-9.,]+)`)
)

// enrichedBlock pairs a block with the identity and impact fields used only
// during grouping. It never leaves this package.
type enrichedBlock struct {
	block  core.AnomalyBlock
	region string
	usage  string
	impact decimal.Decimal
}

// Deduplicate collapses blocks that report the same account, region and
// usage type, keeping the single highest-impact instance of each group.
// Ties keep the first maximum encountered, so the operation is a fixed
// point on its own output. Input order of surviving groups is preserved.
func Deduplicate(blocks []core.AnomalyBlock) []core.AnomalyBlock {
	if len(blocks) <= 1 {
		return blocks
	}

	type group struct {
		best  enrichedBlock
		order int
	}

	groups := make(map[string]*group, len(blocks))
	var keys []string
	for _, block := range blocks {
		enriched := enrich(block)
		key := block.AccountID + "|" + enriched.region + "|" + enriched.usage

		g, ok := groups[key]
		if !ok {
			groups[key] = &group{best: enriched, order: len(keys)}
			keys = append(keys, key)
			continue
		}
		if enriched.impact.GreaterThan(g.best.impact) {
			g.best = enriched
		}
	}

	out := make([]core.AnomalyBlock, 0, len(keys))
	for _, key := range keys {
		out = append(out, groups[key].best.block)
	}
	return out
}

// enrich extracts the grouping fields from a block. A missing impact line
// parses as zero; missing region or usage type group under the empty string.
func enrich(block core.AnomalyBlock) enrichedBlock {
	e := enrichedBlock{block: block, impact: decimal.Zero}

	if m := regionLineRe.FindStringSubmatch(block.TextBlock); m != nil {
		e.region = strings.TrimSpace(m[1])
	}
	if m := usageLineRe.FindStringSubmatch(block.TextBlock); m != nil {
		e.usage = strings.TrimSpace(m[1])
	}
	if m := contributionRe.FindStringSubmatch(block.TextBlock); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if value, err := decimal.NewFromString(raw); err == nil {
			e.impact = value
		}
	}

	return e
}
