// Package copier implements the help-center migration and deletion engines.
//
// The migration engine walks the source tree in strict dependency order
// (categories, sections, articles, with a deferred translation pass after
// each level's primary content exists), builds a source→destination
// correspondence table per level, and applies a create-or-skip policy at
// every node. It holds no state across runs: re-running against the same
// pair of tenants rediscovers existing destination content by name/title
// and skips it.
package copier

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fulmenhq/hccopy/pkg/helpcenter"
	"github.com/fulmenhq/hccopy/pkg/logger"
)

// defaultLocale is stamped on creation payloads whose source record carries
// no locale.
const defaultLocale = "en-us"

// placeholderBody replaces empty or whitespace-only bodies; the destination
// API rejects blank article content.
const placeholderBody = "<p>No content provided.</p>"

// fallbackPermissionGroupID is used when the destination's permission
// groups cannot be resolved.
const fallbackPermissionGroupID int64 = 1

// droppedArticleFields are source article fields deliberately withheld from
// creation payloads. The destination API has been observed to reject
// creation payloads carrying fields it does not expect; revisit this list
// rather than the phase logic if that changes.
var droppedArticleFields = []string{"draft", "promoted", "position", "permission_group_id", "user_segment_id"}

// Options configures a Copier.
type Options struct {
	// Locales is the optional locale substitution table. Nil passes every
	// locale through unchanged.
	Locales *LocaleMap
	// Progress receives phase progress callbacks. Nil discards them.
	Progress ProgressSink
}

// Copier migrates help-center content from a source tenant to a
// destination tenant. It is single-threaded and must not be shared across
// goroutines; one Copier serves one Run.
type Copier struct {
	source   Gateway
	dest     Gateway
	locales  *LocaleMap
	progress ProgressSink

	categories *IDMap
	sections   *IDMap
	articles   *IDMap
}

// New creates a Copier over a source and destination gateway.
func New(source, dest Gateway, opts Options) *Copier {
	progress := opts.Progress
	if progress == nil {
		progress = NopProgress
	}
	return &Copier{
		source:     source,
		dest:       dest,
		locales:    opts.Locales,
		progress:   progress,
		categories: NewIDMap(),
		sections:   NewIDMap(),
		articles:   NewIDMap(),
	}
}

// Mappings returns the correspondence tables built by the last Run, in
// level order: categories, sections, articles.
func (c *Copier) Mappings() (categories, sections, articles *IDMap) {
	return c.categories, c.sections, c.articles
}

// Run executes the six migration phases in dependency order. Per-item
// failures are recorded in the report and never abort a phase; only a
// failed full listing of a level is fatal.
func (c *Copier) Run() (*Report, error) {
	report := newReport()

	if err := c.copyCategories(report); err != nil {
		return nil, err
	}
	c.copyCategoryTranslations(report)
	if err := c.copySections(report); err != nil {
		return nil, err
	}
	c.copySectionTranslations(report)
	if err := c.copyArticles(report); err != nil {
		return nil, err
	}
	c.copyArticleTranslations(report)

	report.FinishedAt = time.Now().UTC()
	return report, nil
}

// mapLocale applies the default and the substitution table to a source
// locale, in that order.
func (c *Copier) mapLocale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		locale = defaultLocale
	}
	return c.locales.Map(locale)
}

func fillBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return placeholderBody
	}
	return body
}

// ---- categories ----

func (c *Copier) copyCategories(report *Report) error {
	sourceCats, err := c.source.ListCategories()
	if err != nil {
		return fmt.Errorf("fetching source categories: %w", err)
	}
	destCats, err := c.dest.ListCategories()
	if err != nil {
		return fmt.Errorf("fetching destination categories: %w", err)
	}

	byName := make(map[string]int64, len(destCats))
	for _, cat := range destCats {
		if _, dup := byName[cat.Name]; dup {
			logger.Warn("destination has duplicate category name; matches collapse onto one node",
				logger.String("name", cat.Name))
			continue
		}
		byName[cat.Name] = cat.ID
	}

	c.progress.PhaseStart(PhaseCategories, len(sourceCats))
	seen := make(map[string]bool, len(sourceCats))
	for _, cat := range sourceCats {
		if seen[cat.Name] {
			logger.Warn("duplicate source category name; both map to the same destination category",
				logger.String("name", cat.Name))
		}
		seen[cat.Name] = true

		if destID, ok := byName[cat.Name]; ok {
			c.categories.Put(cat.ID, destID)
			report.Categories.Skipped++
			c.progress.Advance(PhaseCategories)
			continue
		}

		payload := helpcenter.CategoryPayload{
			Name:        cat.Name,
			Description: cat.Description,
			Locale:      c.mapLocale(cat.Locale),
			Position:    cat.Position,
		}
		created, err := c.dest.CreateCategory(payload)
		if err != nil {
			logger.Error("failed to create category",
				logger.String("name", cat.Name), logger.Err(err))
			report.Categories.Failed++
			c.progress.Advance(PhaseCategories)
			continue
		}
		c.categories.Put(cat.ID, created.ID)
		byName[cat.Name] = created.ID
		report.Categories.Created++
		c.progress.Advance(PhaseCategories)
	}
	c.progress.PhaseDone(PhaseCategories)
	return nil
}

func (c *Copier) copyCategoryTranslations(report *Report) {
	c.copyNodeTranslations(PhaseCategoryTranslations, c.categories.Pairs(),
		c.source.GetCategoryTranslations, c.dest.GetCategoryTranslations,
		c.dest.CreateCategoryTranslation, &report.CategoryTranslations)
}

// ---- sections ----

type sectionKey struct {
	categoryID int64
	name       string
}

func (c *Copier) copySections(report *Report) error {
	sourceSecs, err := c.source.ListSections()
	if err != nil {
		return fmt.Errorf("fetching source sections: %w", err)
	}
	destSecs, err := c.dest.ListSections()
	if err != nil {
		return fmt.Errorf("fetching destination sections: %w", err)
	}

	// Section names are only unique within a category, so the lookup key
	// is the (destination category, name) pair.
	byKey := make(map[sectionKey]int64, len(destSecs))
	for _, sec := range destSecs {
		key := sectionKey{categoryID: sec.CategoryID, name: sec.Name}
		if _, dup := byKey[key]; dup {
			logger.Warn("destination has duplicate section name within a category; matches collapse onto one node",
				logger.String("name", sec.Name), logger.Int64("category_id", sec.CategoryID))
			continue
		}
		byKey[key] = sec.ID
	}

	c.progress.PhaseStart(PhaseSections, len(sourceSecs))
	for _, sec := range sourceSecs {
		destCatID, ok := c.categories.Get(sec.CategoryID)
		if !ok {
			logger.Warn("skipping section: owning category not migrated",
				logger.String("name", sec.Name), logger.Int64("source_category_id", sec.CategoryID))
			report.Sections.Skipped++
			c.progress.Advance(PhaseSections)
			continue
		}

		if destID, ok := byKey[sectionKey{categoryID: destCatID, name: sec.Name}]; ok {
			c.sections.Put(sec.ID, destID)
			report.Sections.Skipped++
			c.progress.Advance(PhaseSections)
			continue
		}

		payload := helpcenter.SectionPayload{
			Name:        sec.Name,
			Description: sec.Description,
			Locale:      c.mapLocale(sec.Locale),
			Position:    sec.Position,
			CategoryID:  destCatID,
		}
		created, err := c.dest.CreateSection(payload)
		if err != nil {
			logger.Error("failed to create section",
				logger.String("name", sec.Name), logger.Err(err))
			report.Sections.Failed++
			c.progress.Advance(PhaseSections)
			continue
		}
		c.sections.Put(sec.ID, created.ID)
		byKey[sectionKey{categoryID: destCatID, name: sec.Name}] = created.ID
		report.Sections.Created++
		c.progress.Advance(PhaseSections)
	}
	c.progress.PhaseDone(PhaseSections)
	return nil
}

func (c *Copier) copySectionTranslations(report *Report) {
	c.copyNodeTranslations(PhaseSectionTranslations, c.sections.Pairs(),
		c.source.GetSectionTranslations, c.dest.GetSectionTranslations,
		c.dest.CreateSectionTranslation, &report.SectionTranslations)
}

// copyNodeTranslations copies missing translations for every mapped
// category or section pair. Per-item failures (including a failed fetch for
// one pair) are logged and counted as skipped; the loop always continues.
func (c *Copier) copyNodeTranslations(
	phase string,
	pairs []IDPair,
	fetchSource, fetchDest func(int64) ([]helpcenter.Translation, error),
	create func(int64, helpcenter.TranslationPayload) (*helpcenter.Translation, error),
	rep *PhaseReport,
) {
	c.progress.PhaseStart(phase, len(pairs))
	for _, pair := range pairs {
		sourceTrans, err := fetchSource(pair.Source)
		if err != nil {
			logger.Warn("failed to fetch source translations",
				logger.String("phase", phase), logger.Int64("source_id", pair.Source), logger.Err(err))
			rep.Skipped++
			c.progress.Advance(phase)
			continue
		}
		destTrans, err := fetchDest(pair.Dest)
		if err != nil {
			logger.Warn("failed to fetch destination translations; treating as none",
				logger.String("phase", phase), logger.Int64("dest_id", pair.Dest), logger.Err(err))
			destTrans = nil
		}

		existing := make(map[string]bool, len(destTrans))
		for _, t := range destTrans {
			existing[normalizeLocale(t.Locale)] = true
		}

		for _, t := range sourceTrans {
			mapped := c.locales.Map(t.Locale)
			if existing[normalizeLocale(mapped)] {
				rep.Skipped++
				continue
			}
			payload := helpcenter.TranslationPayload{
				Locale: mapped,
				Title:  t.Title,
				Body:   t.Body,
			}
			if _, err := create(pair.Dest, payload); err != nil {
				logger.Warn("failed to create translation",
					logger.String("phase", phase), logger.Int64("dest_id", pair.Dest),
					logger.String("locale", mapped), logger.Err(err))
				rep.Skipped++
				continue
			}
			existing[normalizeLocale(mapped)] = true
			rep.Created++
		}
		c.progress.Advance(phase)
	}
	c.progress.PhaseDone(phase)
}

// ---- articles ----

func (c *Copier) copyArticles(report *Report) error {
	groupID := c.resolvePermissionGroup()

	sourceArts, err := c.source.ListArticles()
	if err != nil {
		return fmt.Errorf("fetching source articles: %w", err)
	}
	destArts, err := c.dest.ListArticles()
	if err != nil {
		return fmt.Errorf("fetching destination articles: %w", err)
	}

	type articleKey struct {
		sectionID int64
		title     string
	}
	byKey := make(map[articleKey]int64, len(destArts))
	for _, art := range destArts {
		key := articleKey{sectionID: art.SectionID, title: art.Title}
		if _, dup := byKey[key]; dup {
			logger.Warn("destination has duplicate article title within a section; matches collapse onto one node",
				logger.String("title", art.Title), logger.Int64("section_id", art.SectionID))
			continue
		}
		byKey[key] = art.ID
	}

	c.progress.PhaseStart(PhaseArticles, len(sourceArts))
	dumped := false
	for _, art := range sourceArts {
		destSecID, ok := c.sections.Get(art.SectionID)
		if !ok {
			logger.Warn("skipping article: owning section not migrated",
				logger.String("title", art.Title), logger.Int64("source_section_id", art.SectionID))
			report.Articles.Skipped++
			c.progress.Advance(PhaseArticles)
			continue
		}

		if destID, ok := byKey[articleKey{sectionID: destSecID, title: art.Title}]; ok {
			c.articles.Put(art.ID, destID)
			report.Articles.Skipped++
			c.progress.Advance(PhaseArticles)
			continue
		}

		payload := helpcenter.ArticlePayload{
			Title:             art.Title,
			Body:              fillBody(art.Body),
			Locale:            c.mapLocale(art.Locale),
			PermissionGroupID: groupID,
			UserSegmentID:     nil,
		}
		created, err := c.dest.CreateArticle(destSecID, payload)
		if err != nil {
			// Dump full diagnostics once per run; later failures in the
			// phase are only counted.
			if !dumped {
				dumped = true
				c.dumpArticleFailure(art, destSecID, payload, err)
			}
			report.Articles.Failed++
			c.progress.Advance(PhaseArticles)
			continue
		}
		c.articles.Put(art.ID, created.ID)
		byKey[articleKey{sectionID: destSecID, title: art.Title}] = created.ID
		report.Articles.Created++
		c.progress.Advance(PhaseArticles)
	}
	c.progress.PhaseDone(PhaseArticles)
	return nil
}

// resolvePermissionGroup picks the destination permission group stamped on
// every created article: the first group the destination returns, falling
// back to a fixed default when the lookup fails or returns nothing.
func (c *Copier) resolvePermissionGroup() int64 {
	groups, err := c.dest.ListPermissionGroups()
	if err != nil {
		logger.Warn("failed to resolve destination permission groups; using fallback",
			logger.Int64("fallback_id", fallbackPermissionGroupID), logger.Err(err))
		return fallbackPermissionGroupID
	}
	if len(groups) == 0 {
		logger.Warn("destination has no permission groups; using fallback",
			logger.Int64("fallback_id", fallbackPermissionGroupID))
		return fallbackPermissionGroupID
	}
	return groups[0].ID
}

func (c *Copier) dumpArticleFailure(art helpcenter.Article, destSecID int64, payload helpcenter.ArticlePayload, err error) {
	raw, _ := json.Marshal(payload)
	fields := []logger.Field{
		logger.String("title", art.Title),
		logger.Int64("source_permission_group_id", art.PermissionGroupID),
		logger.Int64("dest_section_id", destSecID),
		logger.String("payload", string(raw)),
		logger.String("dropped_fields", strings.Join(droppedArticleFields, ",")),
	}
	var apiErr *helpcenter.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			logger.Int("status", apiErr.StatusCode),
			logger.String("response_body", apiErr.Body))
	} else {
		fields = append(fields, logger.Err(err))
	}
	logger.Error("article creation failed; dumping first failure in phase", fields...)
}

func (c *Copier) copyArticleTranslations(report *Report) {
	pairs := c.articles.Pairs()

	// Pass 1: record the locales already present per destination article.
	// A failed fetch counts as an empty set, not a fatal error.
	existing := make(map[int64]map[string]bool, len(pairs))
	for _, pair := range pairs {
		existing[pair.Dest] = make(map[string]bool)
		destTrans, err := c.dest.GetArticleTranslations(pair.Dest)
		if err != nil {
			logger.Warn("failed to fetch destination article translations; treating as none",
				logger.Int64("dest_id", pair.Dest), logger.Err(err))
			continue
		}
		for _, t := range destTrans {
			existing[pair.Dest][normalizeLocale(t.Locale)] = true
		}
	}

	// Pass 2: copy every surviving candidate, tracking client-error
	// failures per destination locale for the consolidated warning.
	rejected := make(map[string]int)
	c.progress.PhaseStart(PhaseArticleTranslations, len(pairs))
	for _, pair := range pairs {
		sourceTrans, err := c.source.GetArticleTranslations(pair.Source)
		if err != nil {
			logger.Warn("failed to fetch source article translations",
				logger.Int64("source_id", pair.Source), logger.Err(err))
			report.ArticleTranslations.Skipped++
			c.progress.Advance(PhaseArticleTranslations)
			continue
		}

		for _, t := range sourceTrans {
			// The primary-content translation is embodied in the article's
			// creation payload and is never copied separately.
			if normalizeLocale(t.Locale) == normalizeLocale(t.SourceLocale) {
				continue
			}
			mapped := c.locales.Map(t.Locale)
			if existing[pair.Dest][normalizeLocale(mapped)] {
				report.ArticleTranslations.Skipped++
				continue
			}

			payload := helpcenter.TranslationPayload{
				Locale: mapped,
				Title:  t.Title,
				Body:   fillBody(t.Body),
			}
			if _, err := c.dest.CreateArticleTranslation(pair.Dest, payload); err != nil {
				logger.Warn("failed to create article translation",
					logger.Int64("dest_id", pair.Dest), logger.String("locale", mapped), logger.Err(err))
				report.ArticleTranslations.Failed++
				var apiErr *helpcenter.APIError
				if errors.As(err, &apiErr) && apiErr.IsClientError() {
					rejected[mapped]++
				}
				continue
			}
			existing[pair.Dest][normalizeLocale(mapped)] = true
			report.ArticleTranslations.Created++
		}
		c.progress.Advance(PhaseArticleTranslations)
	}
	c.progress.PhaseDone(PhaseArticleTranslations)

	if len(rejected) > 0 {
		locales := make([]string, 0, len(rejected))
		for locale := range rejected {
			locales = append(locales, locale)
		}
		sort.Strings(locales)
		report.RejectedLocales = locales
		logger.Warn("destination rejected article translations for some locales; "+
			"enable these locales on the destination help center and re-run",
			logger.String("locales", strings.Join(locales, ", ")))
	}
}
