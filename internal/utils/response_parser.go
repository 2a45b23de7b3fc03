package utils

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ParseOutcome reports how a drafting-provider response was decoded.
type ParseOutcome string

const (
	// ParseClean means the payload decoded as-is.
	ParseClean ParseOutcome = "clean"
	// ParseRecovered means the payload decoded after stripping a code
	// fence or isolating a bracketed region.
	ParseRecovered ParseOutcome = "recovered"
	// ParseEmpty means nothing decodable was found; the target is left
	// at its zero value.
	ParseEmpty ParseOutcome = "empty"
)

var codeFenceRe = regexp.MustCompile("(?m)^```(?:json)?\\s*|\\s*```$")

// ResponseParser decodes loosely structured provider responses. Providers
// wrap payloads in code fences, prepend or append prose, or return outright
// malformed text; every call site gets the same recovery ladder.
type ResponseParser struct {
	logger *zap.Logger
}

// NewResponseParser creates a new ResponseParser
func NewResponseParser(logger *zap.Logger) *ResponseParser {
	return &ResponseParser{logger: logger}
}

// Decode unmarshals text into v, tolerating fenced and prose-wrapped
// payloads. On ParseEmpty v is untouched.
func (p *ResponseParser) Decode(text string, v any) ParseOutcome {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParseEmpty
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return ParseClean
	}

	unfenced := strings.TrimSpace(codeFenceRe.ReplaceAllString(trimmed, ""))
	if unfenced != trimmed {
		if err := json.Unmarshal([]byte(unfenced), v); err == nil {
			return ParseRecovered
		}
	}

	// Last resort: the first balanced bracketed or braced region.
	if region := firstBalancedRegion(unfenced); region != "" {
		if err := json.Unmarshal([]byte(region), v); err == nil {
			return ParseRecovered
		}
	}

	p.logger.Debug("Unrecoverable provider response",
		zap.Int("response_size", len(text)))
	return ParseEmpty
}

// firstBalancedRegion returns the first complete [...] or {...} region,
// accounting for nesting and string literals, or "" if none closes.
func firstBalancedRegion(text string) string {
	start := -1
	for i, r := range text {
		if r == '{' || r == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
