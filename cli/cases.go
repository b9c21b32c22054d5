package cli

// This file contains the cases command for inspecting the loaded case list
// without executing it.

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) cases(ctx *cli.Context) error {
	cfg := a.loadConfig(ctx)

	src, err := a.caseSource(cfg)
	if err != nil {
		return err
	}

	cases, err := src.LoadCases(ctx.Context)
	if err != nil {
		return fmt.Errorf("failed to load cases: %w", err)
	}

	if len(cases) == 0 {
		fmt.Println("No cases found")
		return nil
	}

	fmt.Printf("\n=== Cases (%d total) ===\n\n", len(cases))
	for _, c := range cases {
		fmt.Printf("%s  engine=%s\n", c.ID, c.Engine)
		if c.Name != "" {
			fmt.Printf("   Name: %s\n", c.Name)
		}
		fmt.Printf("   URL: %s\n", c.URL)
		if c.AssertTitleContains != "" {
			fmt.Printf("   Title contains: %q\n", c.AssertTitleContains)
		}
		fmt.Println()
	}
	return nil
}
