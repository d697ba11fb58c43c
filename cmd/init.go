package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pkgdir/pkgdir/pkg/config"
)

// InitCommand creates the init command.
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an annotated sample configuration",
		Action: func(ctx context.Context, c *cli.Command) error {
			configPath := c.String("config")
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}
			if err := config.SaveTemplateConfig(configPath); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("Wrote %s\n", configPath)
			return nil
		},
	}
}
