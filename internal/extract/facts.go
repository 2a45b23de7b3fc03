package extract

import (
	"regexp"
	"strings"

	"github.com/abra-it/alert-triage/internal/core"
)

var (
	startDateRe   = regexp.MustCompile(`Start Date:\s*(\d{4}-\d{2}-\d{2})`)
	endDateRe     = regexp.MustCompile(`(?:Last Detected Date|End Date):\s*(\d{4}-\d{2}-\d{2})`)
	awsServiceRe  = regexp.MustCompile(`AWS Service:\s*([^\n]+)`)
	bareServiceRe = regexp.MustCompile(`Service:\s*([^\n]+)`)
	regionRe      = regexp.MustCompile(`Region:\s*([^\n]+)`)
	usageTypeRe   = regexp.MustCompile(`Usage Type:\s*([^\n]+)`)
	totalImpactRe = regexp.MustCompile(`Total Impact:\s*\$?([\d,]+\.?\d*)`)
)

// Dates extracts the observation period from a text block. When only a
// start date is present the end defaults to it; a block with neither
// yields an empty range.
func Dates(text string) core.DateRange {
	var dates core.DateRange
	if m := startDateRe.FindStringSubmatch(text); m != nil {
		dates.Start = m[1]
	}
	if m := endDateRe.FindStringSubmatch(text); m != nil {
		dates.End = m[1]
	} else if dates.Start != "" {
		dates.End = dates.Start
	}
	return dates
}

// Services extracts the ordered unique list of service names, preferring
// "AWS Service:" lines and falling back to bare "Service:" lines.
func Services(text string) []string {
	services := uniqueMatches(awsServiceRe, text)
	if len(services) == 0 {
		services = uniqueMatches(bareServiceRe, text)
	}
	return services
}

// Regions extracts the ordered unique list of region names.
func Regions(text string) []string {
	return uniqueMatches(regionRe, text)
}

// UsageTypes extracts the ordered unique list of usage types.
func UsageTypes(text string) []string {
	return uniqueMatches(usageTypeRe, text)
}

// Amounts assembles the monetary figures for a family. Anomaly and
// free-tier alerts carry a single total impact, taken from the draft when
// the provider supplied one and from the body's "Total Impact:" line
// otherwise. Budget and RI figures are not reliably textual, so they come
// from the draft's budget details alone.
func Amounts(text string, family core.Family, draft *core.DraftResult) core.Amounts {
	var amounts core.Amounts

	total := ""
	if draft != nil {
		total = draft.TotalImpactUSD
	}
	if total == "" || total == "Unknown" || total == "N/A" {
		total = ""
		if m := totalImpactRe.FindStringSubmatch(text); m != nil {
			total = "$" + m[1]
		}
	}
	amounts.TotalImpact = total

	if family == core.FamilyBudget || family == core.FamilyRIUtilization {
		if draft != nil && draft.BudgetDetails != nil {
			amounts.Budgeted = draft.BudgetDetails.BudgetedAmount
			amounts.Actual = draft.BudgetDetails.ActualAmount
			amounts.Threshold = draft.BudgetDetails.Threshold
			amounts.UtilizationPercent = draft.BudgetDetails.UtilizationPercent
		}
	}

	return amounts
}

// Facts extracts every structured field from a finished text block (or a
// full body for families that are never split). It has no side effects and
// degrades to empty fields on any parse miss.
func Facts(text string, family core.Family, accountID, accountName string, draft *core.DraftResult) core.StructuredFacts {
	return core.StructuredFacts{
		AccountID:   accountID,
		AccountName: accountName,
		Dates:       Dates(text),
		Services:    Services(text),
		Regions:     Regions(text),
		UsageTypes:  UsageTypes(text),
		Amounts:     Amounts(text, family, draft),
		Family:      family,
	}
}

func uniqueMatches(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		value := strings.TrimSpace(m[1])
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
