package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/pkgdir/pkgdir/pkg/config"
	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/textmatch"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	starsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Margin(1, 0, 0, 0)
)

// SearchCommand creates the search command for querying the built index
// from the terminal.
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the directory index",
		ArgsUsage: `[query, e.g. 'author:"jane" editor']`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort key (relevance, name, name-desc, stars, stars-desc, author, author-desc)",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			return searchIndex(ctx, c.String("config"), query, c.String("sort"), c.Int("page"))
		},
	}
}

func searchIndex(ctx context.Context, configPath, queryText, sortKey string, page int) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The CLI matches fuzzily in memory; no database needed for a
	// one-shot query.
	variant := variantFromConfig(cfg)
	eng := newEngine(ctx, cfg, textmatch.NewFuzzyMatcher(variant.Searchable))

	result, err := eng.Search(ctx, engine.Params{Query: queryText, Sort: sortKey, Page: page})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if result.Page.TotalItems == 0 {
		fmt.Println(metaStyle.Render("No packages found"))
		return nil
	}

	for i, rec := range result.Page.Items {
		fmt.Printf("%d. %s %s\n", (result.Params.Page-1)*result.Page.Size+i+1,
			nameStyle.Render(rec.Name), starsLabel(rec))
		if rec.Author != "" {
			fmt.Printf("   %s\n", authorStyle.Render("by "+rec.Author))
		}
		if rec.Description != "" {
			fmt.Printf("   %s\n", rec.Description)
		}
		if rec.Permalink != "" {
			fmt.Printf("   %s\n", metaStyle.Render(rec.Permalink))
		}
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf("Page %d/%d, %d packages total",
		result.Params.Page, result.Page.TotalPages, result.Page.TotalItems)))
	return nil
}

func starsLabel(rec registry.Record) string {
	if rec.Stars.Int() == 0 {
		return ""
	}
	return starsStyle.Render(fmt.Sprintf("★ %d", rec.Stars.Int()))
}
