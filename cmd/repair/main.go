package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/marqueehq/marquee/internal/config"
	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/migrate"
	"github.com/marqueehq/marquee/internal/repair"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	live := flag.Bool("live", false, "apply writes instead of the default dry run")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *live {
		confirmed := false

		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Apply counterparty repairs LIVE against project %q?", cfg.Firestore.ProjectID)).
				Description("Repairs are idempotent but still write to production data.").
				Value(&confirmed),
		))

		if err := form.Run(); err != nil {
			slog.Error("confirmation failed", "error", err)
			os.Exit(1)
		}

		if !confirmed {
			fmt.Println(dimStyle.Render("Aborted, nothing written."))
			return
		}
	}

	client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID)
	if err != nil {
		slog.Error("failed to connect to firestore", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	report, err := repair.NewRunner(docstore.NewFirestore(client)).Run(ctx, !*live)
	if err != nil {
		slog.Error("repair failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(renderReport(report))

	if !report.Ok() {
		os.Exit(1)
	}
}

func renderReport(report *migrate.Report) string {
	mode := "DRY RUN"
	if !report.DryRun {
		mode = "LIVE"
	}

	out := titleStyle.Render(fmt.Sprintf("Repair report (%s)", mode)) + "\n"

	for _, stage := range report.Stages {
		line := fmt.Sprintf("  %-24s %d total, %d ok, %d failed (%s)",
			stage.Stage, stage.Result.Total, stage.Result.Successful,
			stage.Result.Failed, stage.Result.Duration.Round(time.Millisecond))

		if stage.Result.Failed > 0 {
			out += failStyle.Render(line) + "\n"

			for _, recErr := range stage.Result.Errors {
				out += dimStyle.Render(fmt.Sprintf("    %s: %s", recErr.ID, recErr.Err)) + "\n"
			}

			continue
		}

		out += okStyle.Render(line) + "\n"
	}

	summary := fmt.Sprintf("\n%d failed in %s", report.TotalFailed, report.Duration.Round(time.Millisecond))
	if report.Ok() {
		summary = "\nAll repairs completed without failures in " + report.Duration.Round(time.Millisecond).String()
	}

	return out + summary
}
