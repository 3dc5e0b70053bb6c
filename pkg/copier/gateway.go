package copier

import "github.com/fulmenhq/hccopy/pkg/helpcenter"

// Gateway is the slice of the help-center API the engines consume. The
// production implementation is *helpcenter.Client; tests supply fakes.
type Gateway interface {
	ListCategories() ([]helpcenter.Category, error)
	ListSections() ([]helpcenter.Section, error)
	ListArticles() ([]helpcenter.Article, error)
	ListPermissionGroups() ([]helpcenter.PermissionGroup, error)

	GetCategoryTranslations(id int64) ([]helpcenter.Translation, error)
	GetSectionTranslations(id int64) ([]helpcenter.Translation, error)
	GetArticleTranslations(id int64) ([]helpcenter.Translation, error)

	CreateCategory(payload helpcenter.CategoryPayload) (*helpcenter.Category, error)
	CreateSection(payload helpcenter.SectionPayload) (*helpcenter.Section, error)
	CreateArticle(sectionID int64, payload helpcenter.ArticlePayload) (*helpcenter.Article, error)

	CreateCategoryTranslation(id int64, payload helpcenter.TranslationPayload) (*helpcenter.Translation, error)
	CreateSectionTranslation(id int64, payload helpcenter.TranslationPayload) (*helpcenter.Translation, error)
	CreateArticleTranslation(id int64, payload helpcenter.TranslationPayload) (*helpcenter.Translation, error)

	DeleteCategory(id int64) error
}
