package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pkgdir/pkgdir/pkg/build"
	"github.com/pkgdir/pkgdir/pkg/config"
)

// BuildCommand creates the build command.
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the static site and search index from a workspace",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stars",
				Usage: "Refresh star counts from GitHub before emitting",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runBuild(ctx, c.String("config"), c.Bool("stars"))
		},
	}
}

func runBuild(ctx context.Context, configPath string, refreshStars bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ws, err := build.LoadWorkspace(cfg.Workspace)
	if err != nil {
		return fmt.Errorf("loading workspace: %w", err)
	}

	if refreshStars {
		token := ""
		if cfg.GitHub != nil {
			token = cfg.GitHub.Token
		}
		build.NewStarFetcher(token).EnrichWorkspace(ctx, ws)
	}

	builder := build.NewBuilder(cfg.SiteDir, nil)
	if err := builder.Build(ws); err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site built into %s\n", cfg.SiteDir)
	return nil
}
