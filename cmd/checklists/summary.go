package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-checklist/internal/generator"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f3a5f"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#b26a00"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func printBuildSummary(w io.Writer, result *generator.BuildResult) {
	if w == nil || result == nil {
		return
	}

	title := "Built checklists"
	if result.DryRun {
		title = "Dry run (nothing written)"
	}
	fmt.Fprintln(w, headerStyle.Render(title))

	for _, page := range result.Rendered {
		line := fmt.Sprintf("  %s %s  %d items", okStyle.Render("ok"), page.Output, page.ItemCount)
		if page.Manifest != "" {
			line += mutedStyle.Render("  + " + page.Manifest)
		}
		fmt.Fprintln(w, line)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("warn"), warning)
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"  pages=%d manifests=%d assets=%d in %s",
		result.PagesBuilt, result.ManifestsBuilt, result.AssetsBuilt, result.Duration.Round(time.Millisecond),
	)))
}

func printCleanSummary(w io.Writer, dir string) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, headerStyle.Render("Cleaned "+dir))
}
