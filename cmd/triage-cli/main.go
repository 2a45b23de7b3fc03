package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abra-it/alert-triage/internal/adapters/ingest"
	"github.com/abra-it/alert-triage/internal/core"
	"github.com/abra-it/alert-triage/internal/di"
	"github.com/abra-it/alert-triage/internal/report"
	"github.com/abra-it/alert-triage/internal/triage"
)

func main() {
	flags := di.ParseFlags()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <email.eml> [email.eml ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run processes every email file given on the command line
func run(logger *zap.Logger, service *triage.Service, flags *di.CLIFlags) error {
	defer logger.Sync()

	source, err := ingest.NewCliSource(service, logger, flags.Verbose)
	if err != nil {
		return err
	}

	ctx := context.Background()
	failures := 0
	var allCards []core.ReportCard
	for _, path := range flag.Args() {
		cards, err := source.ProcessFile(ctx, path)
		if err != nil {
			logger.Error("Failed to process email file",
				zap.String("file", path),
				zap.Error(err))
			failures++
			continue
		}
		allCards = append(allCards, cards...)
	}

	if flags.ReportPath != "" && len(allCards) > 0 {
		if err := writeReport(flags.ReportPath, allCards); err != nil {
			logger.Error("Failed to write HTML report",
				zap.String("file", flags.ReportPath),
				zap.Error(err))
			failures++
		} else {
			logger.Info("Wrote HTML report",
				zap.String("file", flags.ReportPath),
				zap.Int("cards", len(allCards)))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d email files failed", failures, flag.NArg())
	}
	return nil
}

// writeReport renders every card into a single HTML file
func writeReport(path string, cards []core.ReportCard) error {
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return renderer.RenderCards(f, cards)
}
