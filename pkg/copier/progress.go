package copier

// Phase names, in execution order.
const (
	PhaseCategories           = "categories"
	PhaseCategoryTranslations = "category-translations"
	PhaseSections             = "sections"
	PhaseSectionTranslations  = "section-translations"
	PhaseArticles             = "articles"
	PhaseArticleTranslations  = "article-translations"

	PhaseDeleteCategories = "delete-categories"
)

// ProgressSink receives phase progress callbacks from the engines. Console
// rendering lives behind this interface so the engine stays free of
// terminal concerns.
type ProgressSink interface {
	// PhaseStart announces a phase and the number of items it will visit.
	PhaseStart(phase string, total int)
	// Advance reports one visited item, whatever its outcome.
	Advance(phase string)
	// PhaseDone announces the end of a phase.
	PhaseDone(phase string)
}

type nopSink struct{}

func (nopSink) PhaseStart(string, int) {}
func (nopSink) Advance(string)         {}
func (nopSink) PhaseDone(string)       {}

// NopProgress is a ProgressSink that discards all callbacks.
var NopProgress ProgressSink = nopSink{}
