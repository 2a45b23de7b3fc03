package ingest

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestExtractContentPlainText(t *testing.T) {
	msg := parseMessage(t, "From: a@example.com\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n"+
		"\r\n"+
		"Total Impact: $10.00\r\n")

	content, err := extractContent(msg)
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Total Impact: $10.00")
	assert.Empty(t, content.HTML)
}

func TestExtractContentMultipartAlternative(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Content-Type: multipart/alternative; boundary=\"BOUND\"\r\n" +
		"\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain body\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>html body</p>\r\n" +
		"--BOUND--\r\n"

	content, err := extractContent(parseMessage(t, raw))
	require.NoError(t, err)
	assert.Contains(t, content.Text, "plain body")
	assert.Contains(t, content.HTML, "<p>html body</p>")
}

func TestExtractContentQuotedPrintable(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Impact =3D $5.00\r\n"

	content, err := extractContent(parseMessage(t, raw))
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Impact = $5.00")
}

func TestExtractContentNestedMultipart(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Content-Type: multipart/mixed; boundary=\"OUTER\"\r\n" +
		"\r\n" +
		"--OUTER\r\n" +
		"Content-Type: multipart/alternative; boundary=\"INNER\"\r\n" +
		"\r\n" +
		"--INNER\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"nested plain\r\n" +
		"--INNER--\r\n" +
		"--OUTER\r\n" +
		"Content-Type: application/pdf\r\n" +
		"\r\n" +
		"binarystuff\r\n" +
		"--OUTER--\r\n"

	content, err := extractContent(parseMessage(t, raw))
	require.NoError(t, err)
	assert.Contains(t, content.Text, "nested plain")
	assert.NotContains(t, content.Text, "binarystuff")
}

func TestSplitFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantName string
		wantAddr string
	}{
		{
			name:     "name and address",
			header:   "AWS Budgets <budgets@costalerts.amazonaws.com>",
			wantName: "AWS Budgets",
			wantAddr: "budgets@costalerts.amazonaws.com",
		},
		{
			name:     "bare address",
			header:   "no-reply@costalerts.amazonaws.com",
			wantName: "",
			wantAddr: "no-reply@costalerts.amazonaws.com",
		},
		{
			name:     "unparseable keeps raw value",
			header:   "not an address",
			wantName: "",
			wantAddr: "not an address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, addr := splitFromHeader(tt.header)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantAddr, addr)
		})
	}
}

func TestEmailFromMessagePrefersHeaders(t *testing.T) {
	raw := "From: AWS Cost Anomaly Detection <no-reply@costalerts.amazonaws.com>\r\n" +
		"Subject: Cost anomaly detected\r\n" +
		"Message-Id: <abc123@mail.aws>\r\n" +
		"Date: Thu, 20 Aug 2026 09:00:00 +0000\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Start Date: 2026-08-20\r\n"

	email, err := emailFromMessage(parseMessage(t, raw), []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "abc123@mail.aws", email.ID)
	assert.Equal(t, "AWS Cost Anomaly Detection", email.FromName)
	assert.Equal(t, "no-reply@costalerts.amazonaws.com", email.FromAddress)
	assert.Equal(t, "Cost anomaly detected", email.Subject)
	assert.Contains(t, email.BodyText, "Start Date: 2026-08-20")
}
