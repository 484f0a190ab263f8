package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/scrape"
	"artjobs-engine/internal/store"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape pass and exit",
	RunE:  runScrapeOnce,
}

var scrapePlatforms []string

func init() {
	scrapeCommand.Flags().StringSliceVar(&scrapePlatforms, "platform", nil,
		"Platforms to scrape (artstation, gamejobs, hitmarker, email); default: all enabled")
	rootCmd.AddCommand(scrapeCommand)
}

func runScrapeOnce(cmd *cobra.Command, args []string) error {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	userCfgPath, err := config.EnsureUserConfig(dir, filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}

	db, err := store.Open(filepath.Join(dir, "artjobs.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return err
	}

	fetchers, err := scrape.BuildFetchers(cfg, scrapePlatforms)
	if err != nil {
		return err
	}
	if len(fetchers) == 0 {
		return fmt.Errorf("no platforms enabled; edit %s or pass --platform", userCfgPath)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	sums, err := scrape.RunOnce(ctx, db.Pool, cfg, fetchers, nil, nil)
	if err != nil {
		return err
	}

	for _, s := range sums {
		line := fmt.Sprintf("%-12s found=%-4d added=%-4d", s.Source, s.Found, s.Added)
		if s.Error != "" {
			line += " error=" + s.Error
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "total added: %d\n", scrape.TotalAdded(sums))
	return nil
}
