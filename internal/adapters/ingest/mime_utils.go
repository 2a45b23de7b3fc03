package ingest

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// messageContent holds the text and HTML bodies extracted from a message.
type messageContent struct {
	Text string
	HTML string
}

// extractContent pulls the text/plain and text/html parts out of an email
// message. Multipart messages are walked recursively so alternative and
// related containers are handled.
func extractContent(msg *mail.Message) (messageContent, error) {
	var content messageContent

	contentType := msg.Header.Get("Content-Type")
	encoding := msg.Header.Get("Content-Transfer-Encoding")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		bodyBytes, readErr := io.ReadAll(decodeTransfer(msg.Body, encoding))
		if readErr != nil {
			return content, readErr
		}
		if strings.HasPrefix(mediaType, "text/html") {
			content.HTML = string(bodyBytes)
		} else {
			content.Text = string(bodyBytes)
		}
		return content, nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		bodyBytes, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return content, readErr
		}
		content.Text = string(bodyBytes)
		return content, nil
	}

	collectParts(multipart.NewReader(msg.Body, boundary), &content)
	return content, nil
}

// collectParts reads every part of a multipart body and accumulates text and
// HTML content, recursing into nested multipart containers.
func collectParts(mr *multipart.Reader, content *messageContent) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return
		}

		partType := part.Header.Get("Content-Type")
		encoding := part.Header.Get("Content-Transfer-Encoding")
		mediaType, params, err := mime.ParseMediaType(partType)
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(mediaType, "multipart/"):
			if boundary, ok := params["boundary"]; ok {
				collectParts(multipart.NewReader(part, boundary), content)
			}
		case mediaType == "text/plain":
			if partBytes, err := io.ReadAll(decodeTransfer(part, encoding)); err == nil {
				content.Text += string(partBytes)
			}
		case mediaType == "text/html":
			if partBytes, err := io.ReadAll(decodeTransfer(part, encoding)); err == nil {
				content.HTML += string(partBytes)
			}
		}
	}
}

// decodeTransfer wraps a reader with a decoder for the given
// Content-Transfer-Encoding. Base64 and 7bit/8bit pass through unchanged
// since alert emails arrive as quoted-printable or plain text.
func decodeTransfer(r io.Reader, encoding string) io.Reader {
	if strings.EqualFold(strings.TrimSpace(encoding), "quoted-printable") {
		return quotedprintable.NewReader(r)
	}
	return r
}

// decodeEncodedHeader decodes RFC 2047 encoded-word header values.
func decodeEncodedHeader(value string) (string, error) {
	dec := &mime.WordDecoder{}
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value, err
	}
	return decoded, nil
}

// splitFromHeader parses a From header into display name and address.
func splitFromHeader(value string) (name, address string) {
	decoded, _ := decodeEncodedHeader(value)
	addr, err := mail.ParseAddress(decoded)
	if err != nil {
		return "", strings.TrimSpace(decoded)
	}
	return addr.Name, addr.Address
}

// headerSnippet returns a short preview of the body, used when a message has
// no usable text or HTML part.
func headerSnippet(body []byte, limit int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > limit {
		trimmed = trimmed[:limit]
	}
	return string(trimmed)
}
