package mailparse

import (
	"regexp"
	"strings"
)

const (
	forwardMarkerWindow = 2000
	fromLabelWindow     = 1000
)

var (
	toLineRe      = regexp.MustCompile(`To:\s*(.*?)\n`)
	fromLineRe    = regexp.MustCompile(`From:\s*(.*?)\n`)
	dateLineRe    = regexp.MustCompile(`(?:Date|Sent):\s*(.*?)\n`)
	subjectLineRe = regexp.MustCompile(`Subject:\s*(.*?)\n`)
)

// RecoveredMetadata is a partial overlay of header fields recovered from a
// forwarded-message preamble. Empty fields mean "leave the existing value".
type RecoveredMetadata struct {
	FromName    string
	FromAddress string
	Date        string
	Subject     string
}

// Found reports whether any field was recovered.
func (m RecoveredMetadata) Found() bool {
	return m.FromName != "" || m.FromAddress != "" || m.Date != "" || m.Subject != ""
}

// MetadataRecovery detects forwarded-message wrappers and recovers the
// original header fields buried in the body.
//
// PreferRecipient is a deliberate attribution rule, not a parsing default:
// forwarded alerts should show the internal recipient (the embedded "To:"
// address) as the display sender, falling back to "From:" only when no
// usable "To:" line exists.
type MetadataRecovery struct {
	PreferRecipient bool
}

// NewMetadataRecovery creates a MetadataRecovery with the recipient
// attribution rule enabled.
func NewMetadataRecovery() *MetadataRecovery {
	return &MetadataRecovery{PreferRecipient: true}
}

// Recover scans a body for a forwarded-message preamble and returns the
// fields it could read. The zero value means no forward was detected.
func (r *MetadataRecovery) Recover(body string) RecoveredMetadata {
	var meta RecoveredMetadata

	if !r.looksForwarded(body) {
		return meta
	}

	if r.PreferRecipient {
		if m := toLineRe.FindStringSubmatch(body); m != nil {
			meta.FromName, meta.FromAddress = SplitAddress(m[1])
		}
	}
	if meta.FromName == "" && meta.FromAddress == "" {
		if m := fromLineRe.FindStringSubmatch(body); m != nil {
			meta.FromName, meta.FromAddress = SplitAddress(m[1])
		}
	}

	if m := dateLineRe.FindStringSubmatch(body); m != nil {
		meta.Date = strings.TrimSpace(m[1])
	}
	if m := subjectLineRe.FindStringSubmatch(body); m != nil {
		meta.Subject = strings.TrimSpace(m[1])
	}

	return meta
}

// looksForwarded applies the detection heuristic: the forward marker phrase
// near the top, or a "From:" label line in the first kilobyte.
func (r *MetadataRecovery) looksForwarded(body string) bool {
	head := body
	if len(head) > forwardMarkerWindow {
		head = head[:forwardMarkerWindow]
	}
	if strings.Contains(head, "Forwarded message") {
		return true
	}
	if len(body) > fromLabelWindow {
		head = body[:fromLabelWindow]
	} else {
		head = body
	}
	return strings.Contains(head, "From:")
}

// SplitAddress splits a "Name <address>" header value into display name and
// address. A bare address is used for both.
func SplitAddress(raw string) (name, address string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if idx := strings.Index(raw, "<"); idx >= 0 {
		name = strings.Trim(raw[:idx], ` "`)
		address = strings.TrimRight(strings.TrimSpace(raw[idx+1:]), ">")
		return name, address
	}
	return raw, raw
}
