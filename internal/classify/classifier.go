package classify

import (
	"strings"

	"github.com/abra-it/alert-triage/internal/core"
)

// Known vendor notification addresses. Budget and free-tier alerts share the
// costalerts domain, so subject wording is checked before sender address.
const (
	budgetsSenderAddress  = "budgets@costalerts.amazonaws.com"
	freeTierSenderAddress = "freetier@costalerts.amazonaws.com"
)

// Routing labels and the colors used when tagging the source message.
const (
	LabelFetched  = "fetched"
	LabelBudget   = "budget"
	LabelFreeTier = "freetier"

	colorGreen = "#16a765"
	colorRed   = "#fb4c2f"
	colorCyan  = "#00bcd4"
)

// Classify maps sender and subject to an alert family and routing label.
// The evaluation order matters: a forwarded email changes the sender but the
// subject wording survives, so subject markers take priority over sender
// address markers.
func Classify(sender, subject string) core.Classification {
	senderLower := strings.ToLower(sender)
	subjectLower := strings.ToLower(subject)

	if strings.Contains(subjectLower, "cost anomaly") {
		return core.Classification{
			Family:     core.FamilyCostAnomaly,
			Label:      LabelFetched,
			LabelColor: colorGreen,
		}
	}

	if strings.Contains(subjectLower, "aws budget") || strings.Contains(subjectLower, "aws budgets") {
		return budgetBranch(subjectLower)
	}

	if strings.Contains(subjectLower, "aws free tier") {
		return core.Classification{
			Family:     core.FamilyFreeTier,
			Label:      LabelFreeTier,
			LabelColor: colorCyan,
		}
	}

	// Sender fallbacks for subjects altered by a mail client.
	if strings.Contains(senderLower, budgetsSenderAddress) {
		return budgetBranch(subjectLower)
	}
	if strings.Contains(senderLower, freeTierSenderAddress) {
		return core.Classification{
			Family:     core.FamilyFreeTier,
			Label:      LabelFreeTier,
			LabelColor: colorCyan,
		}
	}

	return core.Classification{Family: core.FamilyUnknown}
}

// budgetBranch distinguishes RI utilization alerts from plain budget
// notifications; both route to the budget label.
func budgetBranch(subjectLower string) core.Classification {
	family := core.FamilyBudget
	if strings.Contains(subjectLower, "ri utilization") {
		family = core.FamilyRIUtilization
	}
	return core.Classification{
		Family:     family,
		Label:      LabelBudget,
		LabelColor: colorRed,
	}
}
