/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fulmenhq/hccopy/internal/ops"
	"github.com/fulmenhq/hccopy/pkg/ascii"
	"github.com/fulmenhq/hccopy/pkg/config"
	"github.com/fulmenhq/hccopy/pkg/copier"
	"github.com/fulmenhq/hccopy/pkg/exitcode"
	"github.com/fulmenhq/hccopy/pkg/helpcenter"
	"github.com/fulmenhq/hccopy/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// timeRounding trims report durations for console display.
const timeRounding = 100 * time.Millisecond

// copyCmd represents the copy command
var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy all help center content from source to destination",
	Long: `Copy replicates categories, sections, articles, and their translations
from the source tenant into the destination tenant, in dependency order.

Content that already exists on the destination (matched by name within
its parent) is skipped, so the command can be re-run after a partial
failure without creating duplicates.`,
	RunE: runCopy,
}

func init() {
	if err := ops.RegisterCommand("copy", ops.GroupMigration, copyCmd, "Copy categories, sections, articles, and translations"); err != nil {
		logger.Error(fmt.Sprintf("Failed to register copy command: %v", err))
	}

	credentialFlags(copyCmd.Flags(), "source", "Source")
	credentialFlags(copyCmd.Flags(), "dest", "Destination")
	copyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	copyCmd.Flags().Bool("non-interactive", false, "Fail instead of prompting for missing credentials")
	copyCmd.Flags().Bool("no-progress", false, "Disable progress bars")
	copyCmd.Flags().String("locale-map", "", "YAML file of source to destination locale substitutions")
}

func runCopy(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	applyCredentialFlags(cmd.Flags(), "source", &cfg.Source)
	applyCredentialFlags(cmd.Flags(), "dest", &cfg.Dest)

	if path, _ := cmd.Flags().GetString("locale-map"); path != "" {
		if err := mergeLocaleMapFile(path, cfg); err != nil {
			logger.Error("Failed to load locale map", logger.String("path", path), logger.Err(err))
			os.Exit(exitcode.ConfigError)
		}
	}

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if !cfg.Source.Complete() || !cfg.Dest.Complete() {
		if nonInteractive {
			return fmt.Errorf("source and destination credentials are required (set SOURCE_ZENDESK_* and DEST_ZENDESK_* or pass flags)")
		}
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		if err := promptCredentials(in, out, "Source", &cfg.Source); err != nil {
			return err
		}
		if err := promptCredentials(in, out, "Destination", &cfg.Dest); err != nil {
			return err
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if !jsonOutput {
		fmt.Fprint(cmd.OutOrStdout(), ascii.Box([]string{
			"Zendesk Help Center Copy",
			fmt.Sprintf("%s  ->  %s", cfg.Source.Subdomain, cfg.Dest.Subdomain),
		}))
	}

	source := helpcenter.New(cfg.Source.Subdomain, cfg.Source.Email, cfg.Source.APIToken)
	dest := helpcenter.New(cfg.Dest.Subdomain, cfg.Dest.Email, cfg.Dest.APIToken)

	if err := probeTenants(cfg, source, dest); err != nil {
		logger.Error("Connection check failed", logger.Err(err))
		os.Exit(exitcode.AuthError)
	}
	logger.Info("Connected to both tenants",
		logger.String("source", cfg.Source.Subdomain),
		logger.String("dest", cfg.Dest.Subdomain))

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		in := bufio.NewReader(cmd.InOrStdin())
		question := fmt.Sprintf("Copy all content from %q into %q?", cfg.Source.Subdomain, cfg.Dest.Subdomain)
		if !confirm(in, cmd.OutOrStdout(), question, false) {
			fmt.Fprintln(cmd.OutOrStdout(), "Copy cancelled.")
			os.Exit(exitcode.Cancelled)
		}
	}

	locales := copier.NewLocaleMap(cfg.LocaleMap)
	for _, warning := range locales.Validate() {
		logger.Warn(warning)
	}

	progress := copier.NopProgress
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if !noProgress && !jsonOutput {
		progress = newBarSink(cmd.OutOrStdout())
	}

	engine := copier.New(source, dest, copier.Options{Locales: locales, Progress: progress})
	report, err := engine.Run()
	if err != nil {
		logger.Error("Copy aborted", logger.Err(err))
		return err
	}

	return renderReport(cmd, report, jsonOutput)
}

// probeTenants checks both tenants concurrently before any content moves.
func probeTenants(cfg *config.Config, source, dest *helpcenter.Client) error {
	var g errgroup.Group
	g.Go(func() error {
		if !source.TestConnection() {
			return fmt.Errorf("cannot reach source tenant %q (check subdomain and credentials)", cfg.Source.Subdomain)
		}
		return nil
	})
	g.Go(func() error {
		if !dest.TestConnection() {
			return fmt.Errorf("cannot reach destination tenant %q (check subdomain and credentials)", cfg.Dest.Subdomain)
		}
		return nil
	})
	return g.Wait()
}

// mergeLocaleMapFile overlays pairs from a YAML file onto cfg.LocaleMap.
func mergeLocaleMapFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pairs := map[string]string{}
	if err := yaml.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.LocaleMap == nil {
		cfg.LocaleMap = map[string]string{}
	}
	for k, v := range pairs {
		cfg.LocaleMap[k] = v
	}
	return nil
}

func renderReport(cmd *cobra.Command, report *copier.Report, jsonOutput bool) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	lines := []string{"Copy complete", ""}
	for _, row := range report.Summary() {
		lines = append(lines, fmt.Sprintf("%-24s %-12s %s", row[0], row[1], row[2]))
	}
	lines = append(lines, "", fmt.Sprintf("Run %s finished in %s",
		report.RunID, report.FinishedAt.Sub(report.StartedAt).Round(timeRounding)))
	fmt.Fprint(out, ascii.Box(lines))

	if len(report.RejectedLocales) > 0 {
		logger.Warn(fmt.Sprintf("Destination rejected article translations for locales %v; enable them in Guide admin and re-run", report.RejectedLocales))
	}
	return nil
}
