package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abra-it/alert-triage/internal/classify"
	"github.com/abra-it/alert-triage/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		sender  string
		subject string
		family  core.Family
		label   string
	}{
		{
			name:    "cost anomaly subject",
			sender:  "x@x.com",
			subject: "Cost anomaly detected",
			family:  core.FamilyCostAnomaly,
			label:   classify.LabelFetched,
		},
		{
			name:    "budget subject",
			sender:  "alerts@x.com",
			subject: "AWS Budgets: monthly cost budget exceeded",
			family:  core.FamilyBudget,
			label:   classify.LabelBudget,
		},
		{
			name:    "ri utilization subject",
			sender:  "alerts@x.com",
			subject: "AWS Budgets: RI Utilization Alert",
			family:  core.FamilyRIUtilization,
			label:   classify.LabelBudget,
		},
		{
			name:    "free tier subject",
			sender:  "alerts@x.com",
			subject: "AWS Free Tier limit alert",
			family:  core.FamilyFreeTier,
			label:   classify.LabelFreeTier,
		},
		{
			name:    "subject beats sender",
			sender:  "budgets@costalerts.amazonaws.com",
			subject: "Cost anomaly detected in account",
			family:  core.FamilyCostAnomaly,
			label:   classify.LabelFetched,
		},
		{
			name:    "budgets sender fallback",
			sender:  "AWS Budgets <budgets@costalerts.amazonaws.com>",
			subject: "FYI: billing notification",
			family:  core.FamilyBudget,
			label:   classify.LabelBudget,
		},
		{
			name:    "budgets sender fallback with ri subject",
			sender:  "budgets@costalerts.amazonaws.com",
			subject: "Fwd: RI Utilization warning",
			family:  core.FamilyRIUtilization,
			label:   classify.LabelBudget,
		},
		{
			name:    "free tier sender fallback",
			sender:  "freetier@costalerts.amazonaws.com",
			subject: "Fwd: usage notification",
			family:  core.FamilyFreeTier,
			label:   classify.LabelFreeTier,
		},
		{
			name:    "unknown",
			sender:  "random@x.com",
			subject: "Hello",
			family:  core.FamilyUnknown,
			label:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify.Classify(tt.sender, tt.subject)
			assert.Equal(t, tt.family, c.Family)
			assert.Equal(t, tt.label, c.Label)
			if tt.family == core.FamilyUnknown {
				assert.Empty(t, c.LabelColor)
			} else {
				assert.NotEmpty(t, c.LabelColor)
			}
		})
	}
}
