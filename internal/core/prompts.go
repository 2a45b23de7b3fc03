package core

import (
	"fmt"
)

// Drafting prompts per alert family. Every provider adapter sends the same
// prompt text; only transport differs. The prompts demand a JSON object with
// exactly the keys DraftResult decodes, and the tolerant response parser
// handles providers that wrap or garble the payload anyway.

const anomalyPromptFormat = `You are a FinOps analyst drafting outbound communication for one AWS cost anomaly.

Input:
FROM_NAME: %s
FROM_ADDRESS: %s
SUBJECT: %s
ANOMALY_TEXT:
%s

KNOWN CONTEXT (authoritative, do not second-guess):
Member Account Name: %s
Member Account ID: %s
POC Name: %s

Requirements:
1) Use ONLY the anomaly text above; it describes exactly one anomaly for one account. Never mention other accounts.
2) team_message: a short internal heads-up naming the account, dates, services, regions, usage types and estimated impact.
3) client_message: a polite note to the POC in the customer's language (Hebrew); client_message_en: the same in English. Both name the account, the observation period, the affected service(s) and the estimated amount, and ask whether the usage increase is expected.
4) When the start and end dates are equal write a single date, never a range.
5) When exactly one service is involved use singular phrasing, never a list of one.
6) total_impact_usd: the most relevant cost figure from the text, formatted like "$123.45".
7) urgency: low, medium or high. action_required: true or false.
8) console_link: a URL if one appears in the text, else "".

Return ONLY valid JSON with EXACTLY these keys:
{"summary":"string","anomalies":"string","active_member_account_id":"string","team_message":"string","client_message":"string","client_message_en":"string","urgency":"low|medium|high","action_required":true,"next_action":"string","next_action_en":"string","console_link":"string","total_impact_usd":"string"}`

const budgetPromptFormat = `You are a FinOps analyst processing one AWS %s alert email.

Input:
FROM_ADDRESS: %s
SUBJECT: %s
BODY:
%s

KNOWN CONTEXT (authoritative):
Account Name: %s
Account ID: %s
POC Name: %s

Requirements:
1) Extract the budget figures: budgeted amount, actual amount, the threshold that fired, and for RI utilization alerts the utilization percent.
2) team_message: a short internal heads-up with the extracted figures.
3) client_message: a polite note to the POC in the customer's language (Hebrew); client_message_en: the same in English. Both name the account and the figures and ask whether the spend is expected.
4) total_impact_usd: the actual spend if present, else "N/A".
5) urgency: low, medium or high. action_required: true or false.

Return ONLY valid JSON with EXACTLY these keys:
{"summary":"string","team_message":"string","client_message":"string","client_message_en":"string","urgency":"low|medium|high","action_required":true,"next_action":"string","next_action_en":"string","total_impact_usd":"string","budget_details":{"budget_type":"Cost|RI Utilization","period":"monthly|daily|N/A","budgeted_amount":"string","actual_amount":"string","threshold":"string","utilization_percent":"string"}}`

const freeTierPromptFormat = `You are a FinOps analyst processing one AWS Free Tier limit alert email.

Input:
FROM_ADDRESS: %s
SUBJECT: %s
BODY:
%s

KNOWN CONTEXT (authoritative):
Account Name: %s
Account ID: %s
POC Name: %s

Requirements:
1) Extract the billing month, the alert threshold percent, and each product with its current usage, unit, free-tier limit and usage percent.
2) team_message: a short internal heads-up listing the products and their usage percentages.
3) client_message: a polite note to the POC in the customer's language (Hebrew); client_message_en: the same in English.
4) total_impact_usd: "N/A" unless the email states a cost figure.
5) urgency: low, medium or high. action_required: true or false.

Return ONLY valid JSON with EXACTLY these keys:
{"summary":"string","billing_month":"string","threshold_percent":0,"products":[{"product_name":"string","current_usage_value":0,"current_usage_unit":"string","limit_value":0,"usage_percent":0}],"team_message":"string","client_message":"string","client_message_en":"string","urgency":"low|medium|high","action_required":false,"next_action":"string","next_action_en":"string","total_impact_usd":"N/A"}`

// BuildPrompt renders the drafting prompt for a request. Unknown families
// fall back to the anomaly prompt; the classifier never routes them here.
func BuildPrompt(req *DraftRequest) string {
	switch req.Family {
	case FamilyBudget, FamilyRIUtilization:
		kind := "Budgets cost"
		if req.Family == FamilyRIUtilization {
			kind = "Budgets RI utilization"
		}
		return fmt.Sprintf(budgetPromptFormat,
			kind, req.FromAddress, req.Subject, req.BodyText,
			req.AccountName, req.AccountID, req.POCName)
	case FamilyFreeTier:
		return fmt.Sprintf(freeTierPromptFormat,
			req.FromAddress, req.Subject, req.BodyText,
			req.AccountName, req.AccountID, req.POCName)
	default:
		return fmt.Sprintf(anomalyPromptFormat,
			req.FromName, req.FromAddress, req.Subject, req.BodyText,
			req.AccountName, req.AccountID, req.POCName)
	}
}
