package cli

// This file contains the serve command for the dashboard JSON API.

import (
	"github.com/urfave/cli/v2"

	"github.com/smokerun/smokerun/ghsync"
	"github.com/smokerun/smokerun/history"
	"github.com/smokerun/smokerun/source"
	"github.com/smokerun/smokerun/web"
)

func (a *App) serve(ctx *cli.Context) error {
	cfg := a.loadConfig(ctx)

	// A dashboard without a configured case source still serves history
	var src source.Source
	if s, err := a.caseSource(cfg); err == nil {
		src = s
	} else {
		a.logger.Warn().Err(err).Msg("No case source configured, serving history only")
	}

	store := history.NewStore(a.logger, cfg.HistoryPath)
	client := ghsync.NewClient(a.logger, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken)

	srv := web.NewServer(a.logger, store, src, client, cfg.GitHubActionsURL)
	return srv.ListenAndServe(cfg.ListenAddr)
}
