package cli

// This file contains the list command for displaying recorded runs.

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/smokerun/smokerun/history"
	"github.com/smokerun/smokerun/model"
)

func (a *App) list(ctx *cli.Context) error {
	cfg := a.loadConfig(ctx)
	limit := ctx.Int("limit")
	showResults := ctx.Bool("results")

	store := history.NewStore(a.logger, cfg.HistoryPath)
	runs := store.ReadAll()

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		fmt.Printf("Runs are saved to %s\n", store.Path())
		return nil
	}

	// On disk the history is oldest-first; display newest first
	display := make([]model.RunRecord, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		display = append(display, runs[i])
	}
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	fmt.Printf("\n=== Runs (%d total) ===\n\n", len(runs))

	for _, run := range display {
		// Determine status indicator
		status := "✓"
		if run.Summary.Fail > 0 || run.Summary.Error > 0 {
			status = "✗"
		}

		timestamp := run.ExecutedAt.Local().Format("2006-01-02 15:04:05")
		fmt.Printf("%s  %s  pass=%d fail=%d error=%d  cases=%d\n",
			status, timestamp,
			run.Summary.Pass, run.Summary.Fail, run.Summary.Error,
			len(run.Results))

		if showResults {
			for _, res := range run.Results {
				line := fmt.Sprintf("   %-5s  %s  [%s]", res.Status, res.ID,
					(time.Duration(res.DurationMs) * time.Millisecond).String())
				if res.Name != "" {
					line += "  " + res.Name
				}
				fmt.Println(line)
				if res.Error != nil {
					fmt.Printf("          %s\n", *res.Error)
				}
			}
		}
		fmt.Println()
	}

	return nil
}
