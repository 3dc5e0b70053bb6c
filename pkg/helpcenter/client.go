// Package helpcenter is a client for the Zendesk Help Center API, covering
// the reads, writes, and deletes the copy and cleanup tools need.
package helpcenter

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fulmenhq/hccopy/pkg/logger"
)

// Client talks to one help-center tenant. All list calls drain pagination
// fully before returning.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	fetcher  HTTPFetcher
}

// New creates a Client for a tenant with real HTTP for production use.
func New(subdomain, email, apiToken string) *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}

	baseURL := fmt.Sprintf("https://%s.zendesk.com/api/v2", subdomain)
	return NewWithFetcher(baseURL, email, apiToken, NewRealHTTPFetcher(httpClient))
}

// NewWithFetcher creates a Client with injectable HTTP for testing.
func NewWithFetcher(baseURL, email, apiToken string, fetcher HTTPFetcher) *Client {
	return &Client{
		baseURL:  baseURL,
		email:    email,
		apiToken: apiToken,
		fetcher:  fetcher,
	}
}

// BaseURL returns the tenant API root, e.g. https://acme.zendesk.com/api/v2.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TestConnection probes the tenant with a lightweight read and reports
// whether it succeeded. Auth and network failures both surface as false.
func (c *Client) TestConnection() bool {
	var page struct {
		Categories []Category `json:"categories"`
	}
	if err := c.getJSON(c.baseURL+"/help_center/categories.json", &page); err != nil {
		logger.Debug("connection probe failed", logger.Err(err))
		return false
	}
	return true
}

// ListCategories fetches all categories from the tenant.
func (c *Client) ListCategories() ([]Category, error) {
	var out []Category
	url := c.baseURL + "/help_center/categories.json"
	for url != "" {
		var page struct {
			Categories []Category `json:"categories"`
			NextPage   *string    `json:"next_page"`
		}
		if err := c.getJSON(url, &page); err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		out = append(out, page.Categories...)
		url = nextPage(page.NextPage)
	}
	return out, nil
}

// ListSections fetches all sections across all categories.
func (c *Client) ListSections() ([]Section, error) {
	var out []Section
	url := c.baseURL + "/help_center/sections.json"
	for url != "" {
		var page struct {
			Sections []Section `json:"sections"`
			NextPage *string   `json:"next_page"`
		}
		if err := c.getJSON(url, &page); err != nil {
			return nil, fmt.Errorf("failed to list sections: %w", err)
		}
		out = append(out, page.Sections...)
		url = nextPage(page.NextPage)
	}
	return out, nil
}

// ListArticles fetches all articles across all sections.
func (c *Client) ListArticles() ([]Article, error) {
	var out []Article
	url := c.baseURL + "/help_center/articles.json"
	for url != "" {
		var page struct {
			Articles []Article `json:"articles"`
			NextPage *string   `json:"next_page"`
		}
		if err := c.getJSON(url, &page); err != nil {
			return nil, fmt.Errorf("failed to list articles: %w", err)
		}
		out = append(out, page.Articles...)
		url = nextPage(page.NextPage)
	}
	return out, nil
}

// ListPermissionGroups fetches the tenant's article permission groups.
func (c *Client) ListPermissionGroups() ([]PermissionGroup, error) {
	var out []PermissionGroup
	url := c.baseURL + "/guide/permission_groups.json"
	for url != "" {
		var page struct {
			PermissionGroups []PermissionGroup `json:"permission_groups"`
			NextPage         *string           `json:"next_page"`
		}
		if err := c.getJSON(url, &page); err != nil {
			return nil, fmt.Errorf("failed to list permission groups: %w", err)
		}
		out = append(out, page.PermissionGroups...)
		url = nextPage(page.NextPage)
	}
	return out, nil
}

// ListLocales returns the locales enabled on the tenant's help center.
func (c *Client) ListLocales() ([]string, error) {
	var resp struct {
		Locales       []string `json:"locales"`
		DefaultLocale string   `json:"default_locale"`
	}
	if err := c.getJSON(c.baseURL+"/help_center/locales.json", &resp); err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	return resp.Locales, nil
}

// GetCategoryTranslations fetches all translations attached to a category.
func (c *Client) GetCategoryTranslations(id int64) ([]Translation, error) {
	return c.listTranslations(fmt.Sprintf("%s/help_center/categories/%d/translations.json", c.baseURL, id))
}

// GetSectionTranslations fetches all translations attached to a section.
func (c *Client) GetSectionTranslations(id int64) ([]Translation, error) {
	return c.listTranslations(fmt.Sprintf("%s/help_center/sections/%d/translations.json", c.baseURL, id))
}

// GetArticleTranslations fetches all translations attached to an article.
func (c *Client) GetArticleTranslations(id int64) ([]Translation, error) {
	return c.listTranslations(fmt.Sprintf("%s/help_center/articles/%d/translations.json", c.baseURL, id))
}

func (c *Client) listTranslations(url string) ([]Translation, error) {
	var out []Translation
	for url != "" {
		var page struct {
			Translations []Translation `json:"translations"`
			NextPage     *string       `json:"next_page"`
		}
		if err := c.getJSON(url, &page); err != nil {
			return nil, fmt.Errorf("failed to list translations: %w", err)
		}
		out = append(out, page.Translations...)
		url = nextPage(page.NextPage)
	}
	return out, nil
}

// CreateCategory creates a category and returns the stored resource.
func (c *Client) CreateCategory(payload CategoryPayload) (*Category, error) {
	var resp struct {
		Category Category `json:"category"`
	}
	body := map[string]CategoryPayload{"category": payload}
	if err := c.postJSON(c.baseURL+"/help_center/categories.json", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

// CreateSection creates a section. The payload must carry a destination
// category id.
func (c *Client) CreateSection(payload SectionPayload) (*Section, error) {
	var resp struct {
		Section Section `json:"section"`
	}
	body := map[string]SectionPayload{"section": payload}
	if err := c.postJSON(c.baseURL+"/help_center/sections.json", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Section, nil
}

// CreateArticle creates an article under the given destination section. The
// section id selects the write endpoint and is not part of the payload.
func (c *Client) CreateArticle(sectionID int64, payload ArticlePayload) (*Article, error) {
	var resp struct {
		Article Article `json:"article"`
	}
	body := map[string]ArticlePayload{"article": payload}
	url := fmt.Sprintf("%s/help_center/sections/%d/articles.json", c.baseURL, sectionID)
	if err := c.postJSON(url, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

// CreateCategoryTranslation attaches a translation to a category.
func (c *Client) CreateCategoryTranslation(id int64, payload TranslationPayload) (*Translation, error) {
	return c.createTranslation(fmt.Sprintf("%s/help_center/categories/%d/translations.json", c.baseURL, id), payload)
}

// CreateSectionTranslation attaches a translation to a section.
func (c *Client) CreateSectionTranslation(id int64, payload TranslationPayload) (*Translation, error) {
	return c.createTranslation(fmt.Sprintf("%s/help_center/sections/%d/translations.json", c.baseURL, id), payload)
}

// CreateArticleTranslation attaches a translation to an article.
func (c *Client) CreateArticleTranslation(id int64, payload TranslationPayload) (*Translation, error) {
	return c.createTranslation(fmt.Sprintf("%s/help_center/articles/%d/translations.json", c.baseURL, id), payload)
}

func (c *Client) createTranslation(url string, payload TranslationPayload) (*Translation, error) {
	var resp struct {
		Translation Translation `json:"translation"`
	}
	body := map[string]TranslationPayload{"translation": payload}
	if err := c.postJSON(url, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Translation, nil
}

// DeleteCategory deletes a category. The server cascades the removal to the
// category's sections and articles.
func (c *Client) DeleteCategory(id int64) error {
	url := fmt.Sprintf("%s/help_center/categories/%d.json", c.baseURL, id)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	c.authorize(req)
	resp, err := c.fetcher.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	// Zendesk API token auth: basic auth with "email/token" as username
	req.SetBasicAuth(c.email+"/token", c.apiToken)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) getJSON(url string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(url string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}

func nextPage(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
