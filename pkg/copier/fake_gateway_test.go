package copier

import (
	"github.com/fulmenhq/hccopy/pkg/helpcenter"
)

// fakeGateway is an in-memory Gateway. Creates mutate its state, so the
// same instance can serve as the destination across two runs to exercise
// idempotent re-entry.
type fakeGateway struct {
	categories       []helpcenter.Category
	sections         []helpcenter.Section
	articles         []helpcenter.Article
	permissionGroups []helpcenter.PermissionGroup

	catTrans map[int64][]helpcenter.Translation
	secTrans map[int64][]helpcenter.Translation
	artTrans map[int64][]helpcenter.Translation

	listCategoriesErr   error
	permissionGroupsErr error
	artTransFetchErr    map[int64]error

	createCategoryErr    func(helpcenter.CategoryPayload) error
	createSectionErr     func(helpcenter.SectionPayload) error
	createArticleErr     func(int64, helpcenter.ArticlePayload) error
	createTranslationErr func(kind string, nodeID int64, p helpcenter.TranslationPayload) error
	deleteErr            map[int64]error

	createdArticlePayloads  []helpcenter.ArticlePayload
	createdArticleSections  []int64
	createdCategoryPayloads []helpcenter.CategoryPayload
	createdSectionPayloads  []helpcenter.SectionPayload
	deleted                 []int64

	nextID int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		catTrans:         make(map[int64][]helpcenter.Translation),
		secTrans:         make(map[int64][]helpcenter.Translation),
		artTrans:         make(map[int64][]helpcenter.Translation),
		artTransFetchErr: make(map[int64]error),
		deleteErr:        make(map[int64]error),
		nextID:           1000,
	}
}

func (g *fakeGateway) ListCategories() ([]helpcenter.Category, error) {
	if g.listCategoriesErr != nil {
		return nil, g.listCategoriesErr
	}
	return g.categories, nil
}

func (g *fakeGateway) ListSections() ([]helpcenter.Section, error) {
	return g.sections, nil
}

func (g *fakeGateway) ListArticles() ([]helpcenter.Article, error) {
	return g.articles, nil
}

func (g *fakeGateway) ListPermissionGroups() ([]helpcenter.PermissionGroup, error) {
	if g.permissionGroupsErr != nil {
		return nil, g.permissionGroupsErr
	}
	return g.permissionGroups, nil
}

func (g *fakeGateway) GetCategoryTranslations(id int64) ([]helpcenter.Translation, error) {
	return g.catTrans[id], nil
}

func (g *fakeGateway) GetSectionTranslations(id int64) ([]helpcenter.Translation, error) {
	return g.secTrans[id], nil
}

func (g *fakeGateway) GetArticleTranslations(id int64) ([]helpcenter.Translation, error) {
	if err, ok := g.artTransFetchErr[id]; ok {
		return nil, err
	}
	return g.artTrans[id], nil
}

func (g *fakeGateway) CreateCategory(p helpcenter.CategoryPayload) (*helpcenter.Category, error) {
	if g.createCategoryErr != nil {
		if err := g.createCategoryErr(p); err != nil {
			return nil, err
		}
	}
	g.nextID++
	cat := helpcenter.Category{
		ID:          g.nextID,
		Name:        p.Name,
		Description: p.Description,
		Locale:      p.Locale,
		Position:    p.Position,
	}
	g.categories = append(g.categories, cat)
	g.createdCategoryPayloads = append(g.createdCategoryPayloads, p)
	return &cat, nil
}

func (g *fakeGateway) CreateSection(p helpcenter.SectionPayload) (*helpcenter.Section, error) {
	if g.createSectionErr != nil {
		if err := g.createSectionErr(p); err != nil {
			return nil, err
		}
	}
	g.nextID++
	sec := helpcenter.Section{
		ID:          g.nextID,
		Name:        p.Name,
		Description: p.Description,
		Locale:      p.Locale,
		Position:    p.Position,
		CategoryID:  p.CategoryID,
	}
	g.sections = append(g.sections, sec)
	g.createdSectionPayloads = append(g.createdSectionPayloads, p)
	return &sec, nil
}

func (g *fakeGateway) CreateArticle(sectionID int64, p helpcenter.ArticlePayload) (*helpcenter.Article, error) {
	if g.createArticleErr != nil {
		if err := g.createArticleErr(sectionID, p); err != nil {
			return nil, err
		}
	}
	g.nextID++
	art := helpcenter.Article{
		ID:                g.nextID,
		Title:             p.Title,
		Body:              p.Body,
		Locale:            p.Locale,
		SectionID:         sectionID,
		SourceLocale:      p.Locale,
		PermissionGroupID: p.PermissionGroupID,
	}
	g.articles = append(g.articles, art)
	g.createdArticlePayloads = append(g.createdArticlePayloads, p)
	g.createdArticleSections = append(g.createdArticleSections, sectionID)
	return &art, nil
}

func (g *fakeGateway) createTranslation(kind string, store map[int64][]helpcenter.Translation, nodeID int64, p helpcenter.TranslationPayload) (*helpcenter.Translation, error) {
	if g.createTranslationErr != nil {
		if err := g.createTranslationErr(kind, nodeID, p); err != nil {
			return nil, err
		}
	}
	g.nextID++
	t := helpcenter.Translation{
		ID:     g.nextID,
		Locale: p.Locale,
		Title:  p.Title,
		Body:   p.Body,
	}
	store[nodeID] = append(store[nodeID], t)
	return &t, nil
}

func (g *fakeGateway) CreateCategoryTranslation(id int64, p helpcenter.TranslationPayload) (*helpcenter.Translation, error) {
	return g.createTranslation("category", g.catTrans, id, p)
}

func (g *fakeGateway) CreateSectionTranslation(id int64, p helpcenter.TranslationPayload) (*helpcenter.Translation, error) {
	return g.createTranslation("section", g.secTrans, id, p)
}

func (g *fakeGateway) CreateArticleTranslation(id int64, p helpcenter.TranslationPayload) (*helpcenter.Translation, error) {
	return g.createTranslation("article", g.artTrans, id, p)
}

func (g *fakeGateway) DeleteCategory(id int64) error {
	if err, ok := g.deleteErr[id]; ok {
		return err
	}
	g.deleted = append(g.deleted, id)
	kept := make([]helpcenter.Category, 0, len(g.categories))
	for _, cat := range g.categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	g.categories = kept
	return nil
}
