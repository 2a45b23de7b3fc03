package mailparse

import (
	"regexp"
	"strings"
)

var (
	groupedAccountRe = regexp.MustCompile(`\b\d{3}[- ]?\d{3}[- ]?\d{3}[- ]?\d{3}\b`)
	bareAccountRe    = regexp.MustCompile(`\b\d{12}\b`)
)

// ExtractAccountID scans text for a 12-digit account number, tolerating
// dashes or spaces in a 3-3-3-3 grouping. Returns the digits only, or ""
// when no match exists.
func ExtractAccountID(text string) string {
	if text == "" {
		return ""
	}
	if m := groupedAccountRe.FindString(text); m != "" {
		m = strings.ReplaceAll(m, "-", "")
		return strings.ReplaceAll(m, " ", "")
	}
	return bareAccountRe.FindString(text)
}

// FindAccountID applies ExtractAccountID to the subject first and the body
// as fallback. Vendor subjects place the account number deterministically,
// so the subject has higher precision.
func FindAccountID(subject, body string) string {
	if id := ExtractAccountID(subject); id != "" {
		return id
	}
	return ExtractAccountID(body)
}

// PadAccountID left-zero-pads an account id to 12 digits. Already full ids
// pass through unchanged.
func PadAccountID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) >= 12 {
		return id
	}
	return strings.Repeat("0", 12-len(id)) + id
}
