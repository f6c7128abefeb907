package seo

import (
	"errors"
	"strings"

	"github.com/newindiatimber/timbercraft/internal/validate"
)

var ErrNotFound = errors.New("seo page not found")

const (
	MaxTitleLen       = 60
	MaxDescriptionLen = 160
	pagePlaceholder   = "%page%"
)

var (
	ChangeFreqs = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}
	PageStates  = []string{"published", "draft", "archived"}
)

// GlobalSettings apply to every page that does not override them.
type GlobalSettings struct {
	SiteName           string   `json:"siteName"`
	DefaultTitle       string   `json:"defaultTitle"`
	TitleSeparator     string   `json:"titleSeparator"`
	DefaultDescription string   `json:"defaultDescription"`
	DefaultKeywords    []string `json:"defaultKeywords"`
	CanonicalURL       string   `json:"canonicalURL"`
	OGImage            string   `json:"ogImage"`
	TwitterSite        string   `json:"twitterSite"`
	GoogleAnalyticsID  string   `json:"googleAnalyticsId"`
	UpdatedBy          string   `json:"updatedBy"`
	UpdatedAt          string   `json:"updatedAt"`
}

// PageSettings override the global settings for one page.
type PageSettings struct {
	PageID          string   `json:"pageId"`
	Path            string   `json:"pagePath"`
	PageTitle       string   `json:"pageTitle"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	CanonicalURL    string   `json:"canonicalUrl"`
	NoIndex         bool     `json:"noIndex"`
	NoFollow        bool     `json:"noFollow"`
	Priority        float64  `json:"priority"`
	ChangeFreq      string   `json:"changeFreq"`
	Status          string   `json:"status"`
	UpdatedAt       string   `json:"lastModified"`
}

// DefaultGlobal is the seeded global settings row.
func DefaultGlobal(canonicalURL string) GlobalSettings {
	return GlobalSettings{
		SiteName:           "New India Timber",
		DefaultTitle:       "%page% | New India Timber",
		TitleSeparator:     " | ",
		DefaultDescription: "Premium timber and woodcraft solutions for all your construction and design needs. Quality materials, expert craftsmanship, and reliable service.",
		DefaultKeywords:    []string{"timber", "wood", "teak", "plywood", "construction", "woodcraft"},
		CanonicalURL:       strings.TrimRight(canonicalURL, "/"),
		OGImage:            "/og-image.jpg",
		TwitterSite:        "@newindiatimber",
		UpdatedBy:          "system",
	}
}

// DefaultPages are the predefined, editable pages.
func DefaultPages() []PageSettings {
	pages := []struct{ id, path, title string }{
		{"home", "/", "Home"},
		{"products", "/products", "Products"},
		{"estimator", "/estimator", "Price Estimator"},
		{"bulk-orders", "/bulk-orders", "Bulk Orders"},
		{"comparison", "/comparison", "Wood Comparison"},
		{"about", "/about", "About Us"},
		{"contact", "/contact", "Contact Us"},
	}
	out := make([]PageSettings, 0, len(pages))
	for _, p := range pages {
		out = append(out, PageSettings{
			PageID:     p.id,
			Path:       p.path,
			PageTitle:  p.title,
			Keywords:   []string{},
			Priority:   0.8,
			ChangeFreq: "weekly",
			Status:     "published",
		})
	}
	return out
}

// Validate checks an edited global settings row.
func (g GlobalSettings) Validate() error {
	return validate.First(
		validate.Required("siteName", g.SiteName),
		validate.Required("defaultTitle", g.DefaultTitle),
		validate.MaxLen("defaultDescription", g.DefaultDescription, MaxDescriptionLen),
	)
}

// Validate checks an edited page.
func (p PageSettings) Validate() error {
	if err := validate.First(
		validate.Required("pageTitle", p.PageTitle),
		validate.MaxLen("metaTitle", p.MetaTitle, MaxTitleLen),
		validate.MaxLen("metaDescription", p.MetaDescription, MaxDescriptionLen),
		validate.OneOf("changeFreq", p.ChangeFreq, ChangeFreqs...),
		validate.OneOf("status", p.Status, PageStates...),
	); err != nil {
		return err
	}
	if p.Priority < 0 || p.Priority > 1 {
		return validate.Fail("priority", "must be between 0 and 1")
	}
	return nil
}

// OpenGraph tags of a page.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type"`
	SiteName    string `json:"siteName"`
}

// Meta is the resolved head metadata of a page.
type Meta struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Canonical   string    `json:"canonical"`
	Robots      string    `json:"robots"`
	OpenGraph   OpenGraph `json:"openGraph"`
}

// MetaFor resolves page against the global defaults.
func MetaFor(g GlobalSettings, p PageSettings) Meta {
	m := Meta{
		Title:       p.MetaTitle,
		Description: p.MetaDescription,
		Keywords:    p.Keywords,
		Canonical:   p.CanonicalURL,
	}
	if m.Title == "" {
		m.Title = strings.ReplaceAll(g.DefaultTitle, pagePlaceholder, p.PageTitle)
	}
	if m.Description == "" {
		m.Description = g.DefaultDescription
	}
	if len(m.Keywords) == 0 {
		m.Keywords = g.DefaultKeywords
	}
	if m.Canonical == "" {
		m.Canonical = strings.TrimRight(g.CanonicalURL, "/") + p.Path
	}

	index, follow := "index", "follow"
	if p.NoIndex {
		index = "noindex"
	}
	if p.NoFollow {
		follow = "nofollow"
	}
	m.Robots = index + ", " + follow

	m.OpenGraph = OpenGraph{
		Title:       m.Title,
		Description: m.Description,
		Image:       g.OGImage,
		Type:        "website",
		SiteName:    g.SiteName,
	}
	return m
}
