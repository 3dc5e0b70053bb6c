package copier

import (
	"fmt"

	"github.com/fulmenhq/hccopy/pkg/logger"
)

// DeleteAll removes every category from the tenant behind the gateway. The
// server cascades the removal to each category's sections and articles.
// Per-item failures are logged and counted; only a failed category listing
// is fatal. Confirmation is the caller's concern.
func DeleteAll(gateway Gateway, progress ProgressSink) (*DeleteReport, error) {
	if progress == nil {
		progress = NopProgress
	}

	categories, err := gateway.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	report := &DeleteReport{}
	progress.PhaseStart(PhaseDeleteCategories, len(categories))
	for _, cat := range categories {
		if err := gateway.DeleteCategory(cat.ID); err != nil {
			logger.Error("failed to delete category",
				logger.String("name", cat.Name), logger.Int64("id", cat.ID), logger.Err(err))
			report.Failed++
			progress.Advance(PhaseDeleteCategories)
			continue
		}
		report.Deleted++
		progress.Advance(PhaseDeleteCategories)
	}
	progress.PhaseDone(PhaseDeleteCategories)
	return report, nil
}
