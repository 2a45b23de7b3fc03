package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/triage"
)

// CliSource processes alert emails from .eml files on the command line and
// prints the triage results.
type CliSource struct {
	service *triage.Service
	logger  *zap.Logger
	verbose bool
}

// NewCliSource creates a new CLI alert source.
func NewCliSource(service *triage.Service, logger *zap.Logger, verbose bool) (*CliSource, error) {
	return &CliSource{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessFile reads an .eml file and runs it through the triage pipeline.
func (f *CliSource) ProcessFile(ctx context.Context, path string) ([]core.ReportCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read email file: %w", err)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email file: %w", err)
	}

	email, err := emailFromMessage(msg, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract message content: %w", err)
	}
	if email.ID == "" {
		email.ID = path
	}

	return f.ProcessEmail(ctx, email)
}

// ProcessEmail triages an email and displays the results.
func (f *CliSource) ProcessEmail(ctx context.Context, email *core.Email) ([]core.ReportCard, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.FromAddress))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s <%s>\n", email.FromName, email.FromAddress)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.BodyText))

	if f.verbose {
		preview := email.BodyText
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Triage ===\n")
	fmt.Printf("Classifying and drafting with LLM...\n")
	startTime := time.Now()
	cards, err := f.service.ProcessEmail(ctx, email)
	if err != nil {
		f.logger.Error("Failed to triage email", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Cards generated: %d\n", len(cards))
	for i := range cards {
		printCard(i+1, &cards[i])
	}
	fmt.Printf("Processing time: %v\n", duration)

	return cards, nil
}

func printCard(n int, card *core.ReportCard) {
	fmt.Printf("\n--- Card %d ---\n", n)
	fmt.Printf("Family: %s\n", card.Classification.Family)
	fmt.Printf("Label: %s\n", card.Classification.Label)
	fmt.Printf("Account: %s (%s)\n", card.Facts.AccountName, card.Facts.AccountID)
	if len(card.Facts.Services) > 0 {
		fmt.Printf("Services: %s\n", strings.Join(card.Facts.Services, ", "))
	}
	if len(card.Facts.Regions) > 0 {
		fmt.Printf("Regions: %s\n", strings.Join(card.Facts.Regions, ", "))
	}
	if card.Facts.Amounts.TotalImpact != "" {
		fmt.Printf("Total impact: %s\n", card.Facts.Amounts.TotalImpact)
	}
	if card.Draft.Summary != "" {
		fmt.Printf("Urgency: %s\n", card.Draft.Urgency)
		fmt.Printf("Summary: %s\n", card.Draft.Summary)
	}
	if card.Draft.TeamMessage != "" {
		fmt.Printf("Team message:\n%s\n", card.Draft.TeamMessage)
	}
}

// Start is a no-op for the CLI source.
func (f *CliSource) Start() error {
	return nil
}

// Stop is a no-op for the CLI source.
func (f *CliSource) Stop() error {
	return nil
}
