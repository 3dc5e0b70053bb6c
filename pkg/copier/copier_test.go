package copier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/hccopy/pkg/helpcenter"
)

// sourceTree builds the reference source tenant: one category "FAQ" (id 10),
// one section "General" (id 20), one article "Welcome" (id 30) with an
// empty body and no translations.
func sourceTree() *fakeGateway {
	src := newFakeGateway()
	src.categories = []helpcenter.Category{
		{ID: 10, Name: "FAQ", Description: "Frequently asked questions", Locale: "en-us", Position: 0},
	}
	src.sections = []helpcenter.Section{
		{ID: 20, Name: "General", Locale: "en-us", Position: 0, CategoryID: 10},
	}
	src.articles = []helpcenter.Article{
		{ID: 30, Title: "Welcome", Body: "", Locale: "en-us", SectionID: 20, SourceLocale: "en-us"},
	}
	return src
}

func TestRun_EmptyDestination(t *testing.T) {
	src := sourceTree()
	dst := newFakeGateway()
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 55, Name: "Agents and admins"}}

	c := New(src, dst, Options{})
	report, err := c.Run()
	require.NoError(t, err)

	assert.Equal(t, PhaseReport{Created: 1}, report.Categories)
	assert.Equal(t, PhaseReport{Created: 1}, report.Sections)
	assert.Equal(t, PhaseReport{Created: 1}, report.Articles)
	assert.Equal(t, PhaseReport{}, report.CategoryTranslations)
	assert.Equal(t, PhaseReport{}, report.SectionTranslations)
	assert.Equal(t, PhaseReport{}, report.ArticleTranslations)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.IsZero())

	// The created section hangs off the created category, not the source id.
	require.Len(t, dst.createdSectionPayloads, 1)
	cats, secs, arts := c.Mappings()
	destCatID, ok := cats.Get(10)
	require.True(t, ok)
	assert.Equal(t, destCatID, dst.createdSectionPayloads[0].CategoryID)

	// Blank article body is replaced with the placeholder, the resolved
	// permission group is stamped, and the user segment is explicit null.
	require.Len(t, dst.createdArticlePayloads, 1)
	payload := dst.createdArticlePayloads[0]
	assert.Equal(t, placeholderBody, payload.Body)
	assert.Equal(t, int64(55), payload.PermissionGroupID)
	assert.Nil(t, payload.UserSegmentID)

	destSecID, ok := secs.Get(20)
	require.True(t, ok)
	assert.Equal(t, []int64{destSecID}, dst.createdArticleSections)
	assert.Equal(t, 1, arts.Len())
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	src := sourceTree()
	dst := newFakeGateway()
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 55}}

	first := New(src, dst, Options{})
	_, err := first.Run()
	require.NoError(t, err)
	cats1, secs1, arts1 := first.Mappings()

	second := New(src, dst, Options{})
	report, err := second.Run()
	require.NoError(t, err)

	assert.Equal(t, PhaseReport{Skipped: 1}, report.Categories)
	assert.Equal(t, PhaseReport{Skipped: 1}, report.Sections)
	assert.Equal(t, PhaseReport{Skipped: 1}, report.Articles)

	// The rebuilt correspondence tables match the first run's.
	cats2, secs2, arts2 := second.Mappings()
	assert.Equal(t, cats1.Pairs(), cats2.Pairs())
	assert.Equal(t, secs1.Pairs(), secs2.Pairs())
	assert.Equal(t, arts1.Pairs(), arts2.Pairs())
}

func TestRun_UnresolvedParentsAreSkipped(t *testing.T) {
	src := newFakeGateway()
	src.categories = []helpcenter.Category{{ID: 10, Name: "FAQ", Locale: "en-us"}}
	src.sections = []helpcenter.Section{
		{ID: 20, Name: "General", CategoryID: 10},
		{ID: 21, Name: "Orphaned", CategoryID: 999}, // category never listed
	}
	src.articles = []helpcenter.Article{
		{ID: 30, Title: "Welcome", Body: "<p>hi</p>", SectionID: 20},
		{ID: 31, Title: "Lost", Body: "<p>hi</p>", SectionID: 21}, // owner skipped above
	}
	dst := newFakeGateway()
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 1}}

	report, err := New(src, dst, Options{}).Run()
	require.NoError(t, err)

	assert.Equal(t, PhaseReport{Created: 1, Skipped: 1}, report.Sections)
	assert.Equal(t, PhaseReport{Created: 1, Skipped: 1}, report.Articles)
	// The orphaned nodes were never submitted for creation.
	require.Len(t, dst.createdSectionPayloads, 1)
	assert.Equal(t, "General", dst.createdSectionPayloads[0].Name)
	require.Len(t, dst.createdArticlePayloads, 1)
	assert.Equal(t, "Welcome", dst.createdArticlePayloads[0].Title)
}

func TestRun_SectionMatchUsesCategoryScopedKey(t *testing.T) {
	// Destination has "Billing" under two different categories; the source
	// section must match only the one under its own resolved category.
	src := newFakeGateway()
	src.categories = []helpcenter.Category{{ID: 100, Name: "B"}}
	src.sections = []helpcenter.Section{{ID: 200, Name: "Billing", CategoryID: 100}}

	dst := newFakeGateway()
	dst.categories = []helpcenter.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	dst.sections = []helpcenter.Section{
		{ID: 11, Name: "Billing", CategoryID: 1},
		{ID: 22, Name: "Billing", CategoryID: 2},
	}
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 1}}

	c := New(src, dst, Options{})
	report, err := c.Run()
	require.NoError(t, err)

	assert.Equal(t, PhaseReport{Skipped: 1}, report.Sections)
	_, secs, _ := c.Mappings()
	destID, ok := secs.Get(200)
	require.True(t, ok)
	assert.Equal(t, int64(22), destID)
	assert.Empty(t, dst.createdSectionPayloads)
}

func TestRun_LocaleRemap(t *testing.T) {
	src := newFakeGateway()
	src.categories = []helpcenter.Category{
		{ID: 10, Name: "FAQ", Locale: "en-gb"},
		{ID: 11, Name: "Docs", Locale: "de"},
		{ID: 12, Name: "News"}, // no locale: default applies before mapping
	}
	dst := newFakeGateway()
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 1}}

	locales := NewLocaleMap(map[string]string{"en-gb": "en-150", "en-US": "en-150"})
	_, err := New(src, dst, Options{Locales: locales}).Run()
	require.NoError(t, err)

	require.Len(t, dst.createdCategoryPayloads, 3)
	assert.Equal(t, "en-150", dst.createdCategoryPayloads[0].Locale)
	assert.Equal(t, "de", dst.createdCategoryPayloads[1].Locale, "unmapped locale passes through")
	assert.Equal(t, "en-150", dst.createdCategoryPayloads[2].Locale, "default en-us is mapped too")
}

func TestRun_PermissionGroupFallback(t *testing.T) {
	src := sourceTree()
	dst := newFakeGateway()
	dst.permissionGroupsErr = errors.New("forbidden")

	_, err := New(src, dst, Options{}).Run()
	require.NoError(t, err, "permission group failure is non-fatal")

	require.Len(t, dst.createdArticlePayloads, 1)
	assert.Equal(t, fallbackPermissionGroupID, dst.createdArticlePayloads[0].PermissionGroupID)
}

func TestRun_CreateFailureDoesNotAbortPhase(t *testing.T) {
	src := newFakeGateway()
	src.categories = []helpcenter.Category{
		{ID: 10, Name: "Broken"},
		{ID: 11, Name: "Fine"},
	}
	src.sections = []helpcenter.Section{
		{ID: 20, Name: "Under broken", CategoryID: 10},
		{ID: 21, Name: "Under fine", CategoryID: 11},
	}
	dst := newFakeGateway()
	dst.permissionGroups = []helpcenter.PermissionGroup{{ID: 1}}
	dst.createCategoryErr = func(p helpcenter.CategoryPayload) error {
		if p.Name == "Broken" {
			return &helpcenter.APIError{StatusCode: 500, Body: "boom"}
		}
		return nil
	}

	c := New(src, dst, Options{})
	report, err := c.Run()
	require.NoError(t, err)

	assert.Equal(t, PhaseReport{Created: 1, Failed: 1}, report.Categories)
	// The failed category's section is transitively skipped, the other one
	// is created.
	assert.Equal(t, PhaseReport{Created: 1, Skipped: 1}, report.Sections)
	cats, _, _ := c.Mappings()
	_, ok := cats.Get(10)
	assert.False(t, ok, "failed category must not appear in the correspondence table")
}

func TestRun_FatalWhenSourceListingFails(t *testing.T) {
	src := newFakeGateway()
	src.listCategoriesErr = errors.New("connection refused")
	dst := newFakeGateway()

	_, err := New(src, dst, Options{}).Run()
	require.Error(t, err)
}

func TestDeleteAll(t *testing.T) {
	gw := newFakeGateway()
	gw.categories = []helpcenter.Category{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	gw.deleteErr[2] = &helpcenter.APIError{StatusCode: 403, Body: "forbidden"}

	report, err := DeleteAll(gw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []int64{1, 3}, gw.deleted)
}

func TestDeleteAll_FatalWhenListingFails(t *testing.T) {
	gw := newFakeGateway()
	gw.listCategoriesErr = errors.New("connection refused")
	_, err := DeleteAll(gw, nil)
	require.Error(t, err)
}
