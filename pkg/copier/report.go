package copier

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhaseReport holds the per-item outcome counts of one migration phase.
type PhaseReport struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Report is the structured outcome of one migration run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Categories           PhaseReport `json:"categories"`
	CategoryTranslations PhaseReport `json:"category_translations"`
	Sections             PhaseReport `json:"sections"`
	SectionTranslations  PhaseReport `json:"section_translations"`
	Articles             PhaseReport `json:"articles"`
	ArticleTranslations  PhaseReport `json:"article_translations"`

	// RejectedLocales lists destination locales whose article translations
	// failed with client errors, typically because the locale is not
	// enabled on the destination tenant.
	RejectedLocales []string `json:"rejected_locales,omitempty"`
}

func newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Summary returns the report as rows of phase name and counts, in phase
// order, for console rendering.
func (r *Report) Summary() [][3]string {
	row := func(name string, p PhaseReport) [3]string {
		return [3]string{
			name,
			fmt.Sprintf("%d created", p.Created),
			fmt.Sprintf("%d skipped, %d failed", p.Skipped, p.Failed),
		}
	}
	return [][3]string{
		row("Categories", r.Categories),
		row("Category translations", r.CategoryTranslations),
		row("Sections", r.Sections),
		row("Section translations", r.SectionTranslations),
		row("Articles", r.Articles),
		row("Article translations", r.ArticleTranslations),
	}
}

// DeleteReport is the outcome of one cleanup run.
type DeleteReport struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}
