package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/smokerun/smokerun/config"
	"github.com/smokerun/smokerun/source"
)

const AppName = "smokerun"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Run browser smoke tests and keep their run history",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}

	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "sheet-id",
			Usage:   "Google Sheets spreadsheet id (or full sheet URL) holding the cases",
			EnvVars: []string{"SHEET_ID"},
		},
		&cli.StringFlag{
			Name:    "sheet-range",
			Usage:   "A1 range of the case table",
			EnvVars: []string{"SHEET_RANGE"},
		},
		&cli.StringFlag{
			Name:    "credentials",
			Usage:   "Service account credentials file for the Sheets API",
			EnvVars: []string{"GOOGLE_CREDENTIALS"},
		},
		&cli.StringFlag{
			Name:    "cases-file",
			Usage:   "Local CSV or YAML case file (overrides the sheet source)",
			EnvVars: []string{"CASES_FILE"},
		},
	}
	historyFlag := &cli.StringFlag{
		Name:    "history",
		Usage:   "Path of the history JSON file",
		EnvVars: []string{"HISTORY_PATH"},
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Load cases, run the suite once, and append the results to history",
		Action: app.run,
		Flags:  append(sourceFlags, historyFlag),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List recorded runs, newest first",
		Action: app.list,
		Flags: []cli.Flag{
			historyFlag,
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of runs shown (default: 20)",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "results",
				Usage: "Show per-case results for each run",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "cases",
		Usage:  "Load and print the current case list without running it",
		Action: app.cases,
		Flags:  sourceFlags,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "sync",
		Usage:  "Replace local history with the latest CI artifact snapshot (local-only runs are discarded)",
		Action: app.sync,
		Flags: []cli.Flag{
			historyFlag,
			&cli.StringFlag{
				Name:    "owner",
				Usage:   "GitHub repository owner",
				EnvVars: []string{"GITHUB_OWNER"},
			},
			&cli.StringFlag{
				Name:    "repo",
				Usage:   "GitHub repository name",
				EnvVars: []string{"GITHUB_REPO"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "GitHub access token",
				EnvVars: []string{"GITHUB_TOKEN"},
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "serve",
		Usage:  "Serve the dashboard JSON API",
		Action: app.serve,
		Flags: append(sourceFlags,
			historyFlag,
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Listen address",
				EnvVars: []string{"LISTEN_ADDR"},
			},
		),
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// loadConfig merges the environment-backed config with flag overrides, so
// every component receives one explicit value object.
func (a *App) loadConfig(ctx *cli.Context) config.Config {
	cfg := config.FromEnv()
	if v := ctx.String("sheet-id"); v != "" {
		cfg.SheetID = v
	}
	if v := ctx.String("sheet-range"); v != "" {
		cfg.SheetRange = v
	}
	if v := ctx.String("credentials"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := ctx.String("cases-file"); v != "" {
		cfg.CasesFile = v
	}
	if v := ctx.String("history"); v != "" {
		cfg.HistoryPath = v
	}
	if v := ctx.String("owner"); v != "" {
		cfg.GitHubOwner = v
	}
	if v := ctx.String("repo"); v != "" {
		cfg.GitHubRepo = v
	}
	if v := ctx.String("token"); v != "" {
		cfg.GitHubToken = v
	}
	if v := ctx.String("addr"); v != "" {
		cfg.ListenAddr = v
	}
	return cfg
}

// caseSource picks the configured case source: a local file wins over the
// sheet, the file format follows its extension.
func (a *App) caseSource(cfg config.Config) (source.Source, error) {
	if cfg.CasesFile != "" {
		switch strings.ToLower(filepath.Ext(cfg.CasesFile)) {
		case ".yaml", ".yml":
			return source.NewYAMLSource(cfg.CasesFile), nil
		case ".csv":
			return source.NewCSVSource(cfg.CasesFile), nil
		default:
			return nil, fmt.Errorf("unsupported cases file extension: %s", cfg.CasesFile)
		}
	}
	if cfg.SheetID != "" {
		return source.NewSheetsSource(cfg.SheetID, cfg.SheetRange, cfg.CredentialsFile), nil
	}
	return nil, fmt.Errorf("no case source configured: set SHEET_ID or CASES_FILE")
}
