package cli

// This file contains the sync command: pull the latest CI history artifact
// and replace the local store with it.

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/smokerun/smokerun/ghsync"
	"github.com/smokerun/smokerun/history"
)

func (a *App) sync(ctx *cli.Context) error {
	cfg := a.loadConfig(ctx)

	client := ghsync.NewClient(a.logger, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken)
	records, err := client.FetchLatestHistory(ctx.Context)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	store := history.NewStore(a.logger, cfg.HistoryPath)
	if err := store.ReplaceAll(records); err != nil {
		return fmt.Errorf("failed to write synced history: %w", err)
	}

	fmt.Printf("Synced %d runs from %s/%s into %s\n",
		len(records), cfg.GitHubOwner, cfg.GitHubRepo, store.Path())
	return nil
}
