package seo

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/newindiatimber/timbercraft/internal/db"
)

const (
	sitemapNS           = "http://www.sitemaps.org/schemas/sitemap/0.9"
	productChangeFreq   = "weekly"
	productPriority     = 0.8
	productPathTemplate = "/products/%s"
)

// SitemapProduct is the part of a catalog product the sitemap needs.
type SitemapProduct struct {
	Slug      string
	UpdatedAt string
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders a sitemaps.org document of the published, indexable pages
// followed by the given products.
func Sitemap(canonicalURL string, pages []PageSettings, products []SitemapProduct) ([]byte, error) {
	base := strings.TrimRight(canonicalURL, "/")
	set := urlset{Xmlns: sitemapNS}

	for _, p := range pages {
		if p.Status != "published" || p.NoIndex {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + p.Path,
			LastMod:    db.Date(p.UpdatedAt),
			ChangeFreq: p.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", p.Priority),
		})
	}
	for _, p := range products {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + fmt.Sprintf(productPathTemplate, p.Slug),
			LastMod:    db.Date(p.UpdatedAt),
			ChangeFreq: productChangeFreq,
			Priority:   fmt.Sprintf("%.1f", productPriority),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

var robotsDisallow = []string{"/dashboard/", "/admin/", "/login", "/api/"}

var robotsBots = []string{"Googlebot", "Bingbot", "facebookexternalhit"}

// RobotsTxt renders robots.txt for a site rooted at canonicalURL.
func RobotsTxt(canonicalURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	for _, path := range robotsDisallow {
		fmt.Fprintf(&b, "Disallow: %s\n", path)
	}
	fmt.Fprintf(&b, "\n# Sitemap\nSitemap: %s/sitemap.xml\n", strings.TrimRight(canonicalURL, "/"))
	b.WriteString("\n# Crawl-delay for politeness\nCrawl-delay: 1\n")
	b.WriteString("\n# Allow common bot user-agents\n")
	for i, bot := range robotsBots {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "User-agent: %s\nAllow: /\n", bot)
	}
	return b.String()
}
