/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"io"

	"github.com/fulmenhq/hccopy/pkg/ascii"
	"github.com/fulmenhq/hccopy/pkg/copier"
)

var phaseLabels = map[string]string{
	copier.PhaseCategories:           "Copying categories",
	copier.PhaseCategoryTranslations: "Copying category translations",
	copier.PhaseSections:             "Copying sections",
	copier.PhaseSectionTranslations:  "Copying section translations",
	copier.PhaseArticles:             "Copying articles",
	copier.PhaseArticleTranslations:  "Copying article translations",
	copier.PhaseDeleteCategories:     "Deleting categories",
}

// barSink renders one terminal progress bar per migration phase.
type barSink struct {
	w   io.Writer
	bar *ascii.ProgressBar
}

func newBarSink(w io.Writer) *barSink {
	return &barSink{w: w}
}

func (s *barSink) PhaseStart(phase string, total int) {
	label, ok := phaseLabels[phase]
	if !ok {
		label = phase
	}
	s.bar = ascii.NewProgressBar(s.w, label, total)
}

func (s *barSink) Advance(string) {
	if s.bar != nil {
		s.bar.Advance()
	}
}

func (s *barSink) PhaseDone(string) {
	if s.bar != nil {
		s.bar.Finish()
		s.bar = nil
	}
}
