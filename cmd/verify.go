/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/hccopy/internal/ops"
	"github.com/fulmenhq/hccopy/pkg/ascii"
	"github.com/fulmenhq/hccopy/pkg/config"
	"github.com/fulmenhq/hccopy/pkg/exitcode"
	"github.com/fulmenhq/hccopy/pkg/helpcenter"
	"github.com/fulmenhq/hccopy/pkg/logger"
	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Show content counts and locale status for a tenant",
	Long: `Verify lists how many categories, sections, and articles a tenant
holds, which locales are enabled, and which locales the first article
carries. Run it against the destination after a copy to spot-check the
result, or against the source to size a migration beforehand.`,
	RunE: runVerify,
}

func init() {
	if err := ops.RegisterCommand("verify", ops.GroupMigration, verifyCmd, "Show content counts and locale status for a tenant"); err != nil {
		logger.Error(fmt.Sprintf("Failed to register verify command: %v", err))
	}

	verifyCmd.Flags().String("tenant", "dest", "Which configured tenant to inspect (source|dest)")
	verifyCmd.Flags().String("subdomain", "", "Zendesk subdomain (overrides --tenant)")
	verifyCmd.Flags().String("email", "", "Agent email address")
	verifyCmd.Flags().String("token", "", "API token")
}

type verifyResult struct {
	Subdomain            string   `json:"subdomain"`
	Categories           int      `json:"categories"`
	Sections             int      `json:"sections"`
	Articles             int      `json:"articles"`
	EnabledLocales       []string `json:"enabled_locales"`
	FirstCategoryLocales []string `json:"first_category_locales,omitempty"`
	FirstSectionLocales  []string `json:"first_section_locales,omitempty"`
	FirstArticleTitle    string   `json:"first_article_title,omitempty"`
	FirstArticleLocales  []string `json:"first_article_locales,omitempty"`
	PermissionGroupCount int      `json:"permission_groups"`
}

// translationLocales fetches one node's translations and returns its locales,
// logging instead of failing when the lookup breaks.
func translationLocales(kind string, id int64, fetch func(int64) ([]helpcenter.Translation, error)) []string {
	translations, err := fetch(id)
	if err != nil {
		logger.Warn("Could not fetch translations",
			logger.String("kind", kind), logger.Int64("id", id), logger.Err(err))
		return nil
	}
	locales := make([]string, 0, len(translations))
	for _, t := range translations {
		locales = append(locales, t.Locale)
	}
	return locales
}

func runVerify(cmd *cobra.Command, _ []string) error {
	creds, err := verifyCredentials(cmd)
	if err != nil {
		return err
	}

	client := helpcenter.New(creds.Subdomain, creds.Email, creds.APIToken)
	if !client.TestConnection() {
		logger.Error(fmt.Sprintf("Cannot reach tenant %q (check subdomain and credentials)", creds.Subdomain))
		os.Exit(exitcode.AuthError)
	}

	result := verifyResult{Subdomain: creds.Subdomain}

	categories, err := client.ListCategories()
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	result.Categories = len(categories)

	sections, err := client.ListSections()
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}
	result.Sections = len(sections)

	articles, err := client.ListArticles()
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	result.Articles = len(articles)

	if locales, err := client.ListLocales(); err != nil {
		logger.Warn("Could not list enabled locales", logger.Err(err))
	} else {
		result.EnabledLocales = locales
	}

	if groups, err := client.ListPermissionGroups(); err != nil {
		logger.Warn("Could not list permission groups", logger.Err(err))
	} else {
		result.PermissionGroupCount = len(groups)
	}

	if len(categories) > 0 {
		result.FirstCategoryLocales = translationLocales("category", categories[0].ID, client.GetCategoryTranslations)
	}
	if len(sections) > 0 {
		result.FirstSectionLocales = translationLocales("section", sections[0].ID, client.GetSectionTranslations)
	}
	if len(articles) > 0 {
		result.FirstArticleTitle = articles[0].Title
		result.FirstArticleLocales = translationLocales("article", articles[0].ID, client.GetArticleTranslations)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	lines := []string{
		fmt.Sprintf("Help center on %q", result.Subdomain),
		"",
		fmt.Sprintf("Categories         %d", result.Categories),
		fmt.Sprintf("Sections           %d", result.Sections),
		fmt.Sprintf("Articles           %d", result.Articles),
		fmt.Sprintf("Permission groups  %d", result.PermissionGroupCount),
		fmt.Sprintf("Enabled locales    %s", joinOrNone(result.EnabledLocales)),
	}
	if len(result.FirstCategoryLocales) > 0 {
		lines = append(lines, fmt.Sprintf("First category locales  %s", joinOrNone(result.FirstCategoryLocales)))
	}
	if len(result.FirstSectionLocales) > 0 {
		lines = append(lines, fmt.Sprintf("First section locales   %s", joinOrNone(result.FirstSectionLocales)))
	}
	if result.FirstArticleTitle != "" {
		lines = append(lines,
			fmt.Sprintf("First article      %s", ascii.TruncateForBox(result.FirstArticleTitle, 40)),
			fmt.Sprintf("  locales          %s", joinOrNone(result.FirstArticleLocales)))
	}
	fmt.Fprint(out, ascii.Box(lines))
	return nil
}

// verifyCredentials resolves which tenant to inspect. Explicit flags win;
// otherwise --tenant picks the source or dest block from configuration.
func verifyCredentials(cmd *cobra.Command) (config.Credentials, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Credentials{}, err
	}

	tenant, _ := cmd.Flags().GetString("tenant")
	var creds config.Credentials
	switch tenant {
	case "source":
		creds = cfg.Source
	case "dest":
		creds = cfg.Dest
	default:
		return config.Credentials{}, fmt.Errorf("unknown tenant %q (want source or dest)", tenant)
	}

	if cmd.Flags().Changed("subdomain") {
		creds.Subdomain, _ = cmd.Flags().GetString("subdomain")
	}
	if cmd.Flags().Changed("email") {
		creds.Email, _ = cmd.Flags().GetString("email")
	}
	if cmd.Flags().Changed("token") {
		creds.APIToken, _ = cmd.Flags().GetString("token")
	}

	if !creds.Complete() {
		return config.Credentials{}, fmt.Errorf("%s tenant credentials are incomplete", tenant)
	}
	return creds, nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
