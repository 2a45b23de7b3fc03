package mailparse

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/utils"
)

// MaxBodyLength caps the normalized body to bound downstream processing
// and drafting cost.
const MaxBodyLength = 8000

// BodyNormalizer converts raw email content into a length-capped plain-text
// string. It prefers the plain-text part, strips an HTML part to text when
// no plain part exists, and falls back to the provider snippet. Absence of
// any body yields an empty string, never an error.
type BodyNormalizer struct {
	logger    *zap.Logger
	processor *utils.TextProcessor
	maxLength int
}

// NewBodyNormalizer creates a new BodyNormalizer
func NewBodyNormalizer(logger *zap.Logger, processor *utils.TextProcessor) *BodyNormalizer {
	return &BodyNormalizer{
		logger:    logger,
		processor: processor,
		maxLength: MaxBodyLength,
	}
}

// Normalize returns the capped plain-text body for an email.
func (n *BodyNormalizer) Normalize(email *core.Email) string {
	text := email.BodyText
	if text == "" && email.BodyHTML != "" {
		text = n.StripHTML(email.BodyHTML)
	}
	if text == "" {
		text = email.Snippet
	}

	text = n.processor.CollapseWhitespace(n.processor.SanitizeUTF8(text))
	return n.processor.TruncateText(text, n.maxLength)
}

// StripHTML extracts the visible text of an HTML document, dropping script
// and style subtrees. A document that fails to parse degrades to its raw
// text with tags removed by the tokenizer, not to an error.
func (n *BodyNormalizer) StripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		n.logger.Debug("HTML parse failed, keeping raw text", zap.Error(err))
		return content
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style":
				return
			}
		}
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString("\n")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return n.processor.CollapseWhitespace(sb.String())
}
