package core

import (
	"time"
)

// Family is the classification bucket assigned to an incoming alert email.
type Family string

const (
	FamilyCostAnomaly   Family = "cost_anomaly"
	FamilyBudget        Family = "budget_notification"
	FamilyRIUtilization Family = "ri_utilization_alert"
	FamilyFreeTier      Family = "free_tier"
	FamilyUnknown       Family = "unknown"
)

// Email represents a decoded alert email as handed over by a mail source.
// It is never mutated after construction; recovered forwarded-message
// metadata is applied to a copy.
type Email struct {
	ID          string
	FromName    string
	FromAddress string
	Subject     string
	BodyText    string
	BodyHTML    string
	Snippet     string
	Date        string
}

// Classification carries the routing decision for one email.
type Classification struct {
	Family     Family
	Label      string
	LabelColor string
}

// AnomalyBlock is a self-contained slice of an email body describing exactly
// one anomaly for one account.
type AnomalyBlock struct {
	AccountID   string
	AccountName string
	TextBlock   string
	MonitorType string
}

// AccountRecord is one row of the externally loaded account roster.
type AccountRecord struct {
	AccountID       string
	AccountName     string
	OperationsEmail string
	POCName         string
	Customer        string
}

// DateRange is an inclusive anomaly observation period.
type DateRange struct {
	Start string
	End   string
}

// Amounts holds the monetary figures for a report card. Which fields are
// populated depends on the alert family.
type Amounts struct {
	TotalImpact        string
	Budgeted           string
	Actual             string
	Threshold          string
	UtilizationPercent string
}

// StructuredFacts is the extraction result for one anomaly block or one
// unsplit alert body. It must be derivable from the text alone.
type StructuredFacts struct {
	AccountID   string
	AccountName string
	Dates       DateRange
	Services    []string
	Regions     []string
	UsageTypes  []string
	Amounts     Amounts
	Family      Family
}

// DraftRequest is the fact bundle handed to a drafting provider.
type DraftRequest struct {
	Family      Family
	FromName    string
	FromAddress string
	Subject     string
	BodyText    string
	AccountID   string
	AccountName string
	POCName     string
}

// BudgetDetails carries the figures a drafting provider extracts from
// budget and RI utilization alerts. These are not reliably present as
// labeled lines in the body, so they come from the draft rather than regex.
type BudgetDetails struct {
	BudgetType         string `json:"budget_type"`
	Period             string `json:"period"`
	BudgetedAmount     string `json:"budgeted_amount"`
	ActualAmount       string `json:"actual_amount"`
	Threshold          string `json:"threshold"`
	UtilizationPercent string `json:"utilization_percent"`
}

// FreeTierProduct is one product row of a free-tier limit alert.
type FreeTierProduct struct {
	ProductName       string  `json:"product_name"`
	CurrentUsageValue float64 `json:"current_usage_value"`
	CurrentUsageUnit  string  `json:"current_usage_unit"`
	LimitValue        float64 `json:"limit_value"`
	UsagePercent      float64 `json:"usage_percent"`
}

// DraftResult is the loosely structured output of a drafting provider.
// Field names match the JSON contract the prompts request; a malformed
// response decodes to the zero value rather than failing.
type DraftResult struct {
	Summary         string            `json:"summary"`
	Anomalies       string            `json:"anomalies"`
	ActiveAccountID string            `json:"active_member_account_id"`
	TeamMessage     string            `json:"team_message"`
	ClientMessage   string            `json:"client_message"`
	ClientMessageEN string            `json:"client_message_en"`
	Urgency         string            `json:"urgency"`
	ActionRequired  bool              `json:"action_required"`
	NextAction      string            `json:"next_action"`
	NextActionEN    string            `json:"next_action_en"`
	ConsoleLink     string            `json:"console_link"`
	TotalImpactUSD  string            `json:"total_impact_usd"`
	BudgetDetails   *BudgetDetails    `json:"budget_details,omitempty"`
	BillingMonth    string            `json:"billing_month,omitempty"`
	ThresholdPct    float64           `json:"threshold_percent,omitempty"`
	Products        []FreeTierProduct `json:"products,omitempty"`
	ModelUsed       string            `json:"-"`
	GeneratedAt     time.Time         `json:"-"`
}

// ReportCard is the per-anomaly output of a processing pass: everything a
// renderer or ledger export needs for one accepted alert.
type ReportCard struct {
	EmailID        string
	Classification Classification
	Facts          StructuredFacts
	Draft          DraftResult
}

// LedgerEntry is the row shape the tracking ledger stores, keyed for
// duplicate detection on account, region, services, usage type, start date
// and impact.
type LedgerEntry struct {
	Timestamp   time.Time
	CompanyName string
	AccountName string
	AccountID   string
	StartDate   string
	EndDate     string
	Region      string
	Services    string
	UsageType   string
	TotalImpact string
	Status      string
}
