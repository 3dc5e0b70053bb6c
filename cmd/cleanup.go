/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/hccopy/internal/ops"
	"github.com/fulmenhq/hccopy/pkg/ascii"
	"github.com/fulmenhq/hccopy/pkg/config"
	"github.com/fulmenhq/hccopy/pkg/copier"
	"github.com/fulmenhq/hccopy/pkg/exitcode"
	"github.com/fulmenhq/hccopy/pkg/helpcenter"
	"github.com/fulmenhq/hccopy/pkg/logger"
	"github.com/spf13/cobra"
)

// cleanupPreviewLimit caps how many category names the confirmation
// screen lists before collapsing the rest into a count.
const cleanupPreviewLimit = 10

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete ALL help center content from the destination tenant",
	Long: `Cleanup deletes every category on the destination tenant. Zendesk
cascades the deletion to the sections, articles, and translations
underneath, so this removes the entire content tree.

This is irreversible. The command shows what it is about to delete and
requires typing DELETE to proceed unless --yes is given.`,
	RunE: runCleanup,
}

func init() {
	if err := ops.RegisterCommand("cleanup", ops.GroupMigration, cleanupCmd, "Delete all destination content (destructive)"); err != nil {
		logger.Error(fmt.Sprintf("Failed to register cleanup command: %v", err))
	}

	credentialFlags(cleanupCmd.Flags(), "dest", "Destination")
	cleanupCmd.Flags().BoolP("yes", "y", false, "Skip the typed DELETE confirmation")
	cleanupCmd.Flags().Bool("non-interactive", false, "Fail instead of prompting for missing credentials")
	cleanupCmd.Flags().Bool("no-progress", false, "Disable progress bars")
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}
	applyCredentialFlags(cmd.Flags(), "dest", &cfg.Dest)

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if !cfg.Dest.Complete() {
		if nonInteractive {
			return fmt.Errorf("destination credentials are required (set DEST_ZENDESK_* or pass flags)")
		}
		in := bufio.NewReader(cmd.InOrStdin())
		if err := promptCredentials(in, cmd.OutOrStdout(), "Destination", &cfg.Dest); err != nil {
			return err
		}
	}

	dest := helpcenter.New(cfg.Dest.Subdomain, cfg.Dest.Email, cfg.Dest.APIToken)
	if !dest.TestConnection() {
		logger.Error(fmt.Sprintf("Cannot reach destination tenant %q (check subdomain and credentials)", cfg.Dest.Subdomain))
		os.Exit(exitcode.AuthError)
	}

	categories, err := dest.ListCategories()
	if err != nil {
		logger.Error("Failed to list destination categories", logger.Err(err))
		return err
	}
	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if len(categories) == 0 {
		if jsonOutput {
			fmt.Fprintln(out, `{"deleted": 0, "failed": 0}`)
		} else {
			fmt.Fprintln(out, "Destination has no categories; nothing to delete.")
		}
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !confirmCleanup(cmd, cfg.Dest.Subdomain, categories) {
			fmt.Fprintln(out, "Cleanup cancelled.")
			os.Exit(exitcode.Cancelled)
		}
	}

	progress := copier.NopProgress
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if !noProgress && !jsonOutput {
		progress = newBarSink(out)
	}

	report, err := copier.DeleteAll(dest, progress)
	if err != nil {
		logger.Error("Cleanup aborted", logger.Err(err))
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintf(out, "Deleted %d categories (%d failed).\n", report.Deleted, report.Failed)
	if report.Failed > 0 {
		logger.Warn(fmt.Sprintf("%d categories could not be deleted; re-run cleanup to retry", report.Failed))
	}
	return nil
}

// confirmCleanup previews the doomed categories and demands a typed DELETE.
func confirmCleanup(cmd *cobra.Command, subdomain string, categories []helpcenter.Category) bool {
	lines := []string{
		fmt.Sprintf("About to DELETE all content on %q", subdomain),
		"",
	}
	for i, cat := range categories {
		if i == cleanupPreviewLimit {
			lines = append(lines, fmt.Sprintf("  ... and %d more", len(categories)-cleanupPreviewLimit))
			break
		}
		lines = append(lines, "  "+ascii.TruncateForBox(cat.Name, 60))
	}
	lines = append(lines, "", "This cannot be undone.")
	fmt.Fprint(cmd.OutOrStdout(), ascii.Box(lines))

	fmt.Fprint(cmd.OutOrStdout(), "Type DELETE to confirm: ")
	in := bufio.NewReader(cmd.InOrStdin())
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == "DELETE"
}
