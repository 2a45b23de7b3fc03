package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/triage"
)

// SMTPSource receives alert emails over SMTP and feeds them into the triage
// pipeline. It is designed to sit behind a mail relay that forwards AWS
// billing alert mail to a dedicated address.
type SMTPSource struct {
	service        *triage.Service
	logger         *zap.Logger
	listenAddr     string
	server         *smtp.Server
	processTimeout time.Duration
	autoExport     bool
}

// NewSMTPSource creates a new SMTP alert source.
func NewSMTPSource(
	service *triage.Service,
	logger *zap.Logger,
	listenAddr string,
	processTimeout time.Duration,
	autoExport bool,
) *SMTPSource {
	if processTimeout <= 0 {
		processTimeout = 60 * time.Second
	}
	return &SMTPSource{
		service:        service,
		logger:         logger,
		listenAddr:     listenAddr,
		processTimeout: processTimeout,
		autoExport:     autoExport,
	}
}

// Start starts the SMTP server.
func (s *SMTPSource) Start() error {
	s.server = smtp.NewServer(&smtpBackend{source: s})

	s.server.Addr = s.listenAddr
	s.server.Domain = "localhost"
	s.server.ReadTimeout = 30 * time.Second
	s.server.WriteTimeout = 30 * time.Second
	s.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	s.server.MaxRecipients = 50
	s.server.AllowInsecureAuth = true

	s.logger.Info("SMTP alert source starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				s.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server.
func (s *SMTPSource) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// handleMessage parses a raw message and runs it through the triage pipeline.
func (s *SMTPSource) handleMessage(envelopeFrom string, rawData []byte) error {
	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		return fmt.Errorf("failed to parse email message: %w", err)
	}

	email, err := emailFromMessage(msg, rawData)
	if err != nil {
		return fmt.Errorf("failed to extract message content: %w", err)
	}
	if email.FromAddress == "" {
		email.FromAddress = envelopeFrom
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.processTimeout)
	defer cancel()

	cards, err := s.service.ProcessEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to triage email",
			zap.Error(err),
			zap.String("sender", email.FromAddress),
			zap.String("subject", email.Subject))
		return nil
	}

	for i := range cards {
		card := &cards[i]
		s.logger.Info("Triaged alert",
			zap.String("family", string(card.Classification.Family)),
			zap.String("account_id", card.Facts.AccountID),
			zap.String("total_impact", card.Facts.Amounts.TotalImpact))

		if s.autoExport && card.Classification.Family == core.FamilyCostAnomaly {
			status, detail, err := s.service.ExportCard(ctx, card, false)
			if err != nil {
				s.logger.Error("Failed to export triaged alert", zap.Error(err))
				continue
			}
			if status != core.ExportAccepted {
				s.logger.Info("Skipped duplicate ledger entry",
					zap.String("status", string(status)),
					zap.String("detail", detail))
			}
		}
	}

	return nil
}

// emailFromMessage builds a pipeline email from a parsed message.
func emailFromMessage(msg *mail.Message, rawData []byte) (*core.Email, error) {
	content, err := extractContent(msg)
	if err != nil {
		return nil, err
	}

	fromName, fromAddress := splitFromHeader(msg.Header.Get("From"))
	subject, _ := decodeEncodedHeader(msg.Header.Get("Subject"))

	email := &core.Email{
		ID:          strings.Trim(msg.Header.Get("Message-Id"), "<>"),
		FromName:    fromName,
		FromAddress: fromAddress,
		Subject:     subject,
		BodyText:    content.Text,
		BodyHTML:    content.HTML,
	}

	if email.BodyText == "" && email.BodyHTML == "" {
		email.Snippet = headerSnippet(rawData, 500)
	}

	email.Date = msg.Header.Get("Date")

	return email, nil
}

// smtpBackend implements the go-smtp Backend interface.
type smtpBackend struct {
	source *SMTPSource
}

// NewSession creates a new SMTP session.
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		source:     b.source,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface.
type smtpSession struct {
	source     *SMTPSource
	sender     string
	recipients []string
}

// Reset resets the session state.
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for this source).
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address.
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient.
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data handles the email data.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.source.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	return s.source.handleMessage(s.sender, rawData)
}

// Logout handles SMTP logout.
func (s *smtpSession) Logout() error {
	return nil
}
