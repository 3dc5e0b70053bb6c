package helpcenter

// Category is the root level of the help-center tree.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
}

// Section is owned by exactly one category.
type Section struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
	CategoryID  int64  `json:"category_id"`
}

// Article is owned by exactly one section.
type Article struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Body              string `json:"body"`
	Locale            string `json:"locale"`
	Position          int    `json:"position"`
	SectionID         int64  `json:"section_id"`
	Draft             bool   `json:"draft"`
	Promoted          bool   `json:"promoted"`
	SourceLocale      string `json:"source_locale"`
	PermissionGroupID int64  `json:"permission_group_id,omitempty"`
	UserSegmentID     *int64 `json:"user_segment_id,omitempty"`
}

// Translation is attached to exactly one category, section, or article.
// The translation whose locale equals the parent's source locale is the
// primary content and is embodied in the parent's creation payload.
type Translation struct {
	ID           int64  `json:"id"`
	Locale       string `json:"locale"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	Draft        bool   `json:"draft"`
	Hidden       bool   `json:"hidden"`
	Outdated     bool   `json:"outdated"`
	SourceLocale string `json:"source_locale"`
}

// PermissionGroup controls who can view and edit articles.
type PermissionGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryPayload is the creation payload for a category.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
}

// SectionPayload is the creation payload for a section. CategoryID must be a
// destination category identifier.
type SectionPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
	Position    int    `json:"position"`
	CategoryID  int64  `json:"category_id"`
}

// ArticlePayload is the creation payload for an article. It deliberately
// carries only the fields the destination API accepts at creation time; the
// target section is addressed through the endpoint URL, not the payload.
// UserSegmentID serializes as null when nil, which makes the article visible
// to everyone.
type ArticlePayload struct {
	Title             string `json:"title"`
	Body              string `json:"body"`
	Locale            string `json:"locale"`
	PermissionGroupID int64  `json:"permission_group_id"`
	UserSegmentID     *int64 `json:"user_segment_id"`
}

// TranslationPayload is the creation payload for a translation on any node.
type TranslationPayload struct {
	Locale string `json:"locale"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
