package seo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/newindiatimber/timbercraft/internal/db"
)

// Store persists SEO settings.
type Store struct {
	db *db.Handle
}

func NewStore(h *db.Handle) *Store {
	return &Store{db: h}
}

// GetGlobal returns the singleton settings row, or the defaults for siteURL when
// it has not been seeded yet.
func (s *Store) GetGlobal(ctx context.Context, siteURL string) (GlobalSettings, error) {
	var g GlobalSettings
	var keywords string
	err := s.db.QueryRowContext(ctx, `
		SELECT site_name, default_title, title_separator, default_description, default_keywords,
			canonical_url, og_image, twitter_site, google_analytics_id, updated_by, updated_at
		FROM seo_global
		WHERE id = 1
	`).Scan(&g.SiteName, &g.DefaultTitle, &g.TitleSeparator, &g.DefaultDescription, &keywords,
		&g.CanonicalURL, &g.OGImage, &g.TwitterSite, &g.GoogleAnalyticsID, &g.UpdatedBy, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultGlobal(siteURL), nil
	}
	if err != nil {
		return GlobalSettings{}, fmt.Errorf("query global seo settings: %w", err)
	}
	g.DefaultKeywords = db.SplitList(keywords)
	return g, nil
}

// UpdateGlobal validates and upserts the singleton settings row.
func (s *Store) UpdateGlobal(ctx context.Context, g GlobalSettings, updatedBy string) (GlobalSettings, error) {
	g.CanonicalURL = strings.TrimRight(strings.TrimSpace(g.CanonicalURL), "/")
	if err := g.Validate(); err != nil {
		return GlobalSettings{}, err
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO seo_global (id, site_name, default_title, title_separator, default_description, default_keywords,
			canonical_url, og_image, twitter_site, google_analytics_id, updated_by)
		VALUES (1, `+db.Placeholders(10)+`)
		ON CONFLICT (id) DO UPDATE SET
			site_name = excluded.site_name,
			default_title = excluded.default_title,
			title_separator = excluded.title_separator,
			default_description = excluded.default_description,
			default_keywords = excluded.default_keywords,
			canonical_url = excluded.canonical_url,
			og_image = excluded.og_image,
			twitter_site = excluded.twitter_site,
			google_analytics_id = excluded.google_analytics_id,
			updated_by = excluded.updated_by,
			updated_at = CURRENT_TIMESTAMP
	`), g.SiteName, g.DefaultTitle, g.TitleSeparator, g.DefaultDescription, db.JoinList(g.DefaultKeywords),
		g.CanonicalURL, g.OGImage, g.TwitterSite, g.GoogleAnalyticsID, updatedBy)
	if err != nil {
		return GlobalSettings{}, fmt.Errorf("upsert global seo settings: %w", err)
	}
	return s.GetGlobal(ctx, g.CanonicalURL)
}

const pageColumns = `page_id, path, page_title, meta_title, meta_description, keywords, canonical_url,
	no_index, no_follow, priority, change_freq, status, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (PageSettings, error) {
	var p PageSettings
	var keywords string
	err := row.Scan(&p.PageID, &p.Path, &p.PageTitle, &p.MetaTitle, &p.MetaDescription, &keywords, &p.CanonicalURL,
		&p.NoIndex, &p.NoFollow, &p.Priority, &p.ChangeFreq, &p.Status, &p.UpdatedAt)
	if err != nil {
		return PageSettings{}, err
	}
	p.Keywords = db.SplitList(keywords)
	return p, nil
}

// ListPages returns every page ordered by path.
func (s *Store) ListPages(ctx context.Context) ([]PageSettings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM seo_pages ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("query seo pages: %w", err)
	}
	defer rows.Close()

	pages := []PageSettings{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seo page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seo pages: %w", err)
	}
	return pages, nil
}

func (s *Store) GetPage(ctx context.Context, pageID string) (PageSettings, error) {
	p, err := scanPage(s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT `+pageColumns+` FROM seo_pages WHERE page_id = ?`), pageID))
	if errors.Is(err, sql.ErrNoRows) {
		return PageSettings{}, ErrNotFound
	}
	if err != nil {
		return PageSettings{}, fmt.Errorf("query seo page %q: %w", pageID, err)
	}
	return p, nil
}

// UpdatePage validates and replaces the editable fields of an existing page.
// PageID and Path are fixed.
func (s *Store) UpdatePage(ctx context.Context, pageID string, p PageSettings) (PageSettings, error) {
	current, err := s.GetPage(ctx, pageID)
	if err != nil {
		return PageSettings{}, err
	}
	p.PageID, p.Path = current.PageID, current.Path
	p.MetaTitle = strings.TrimSpace(p.MetaTitle)
	p.MetaDescription = strings.TrimSpace(p.MetaDescription)
	if err := p.Validate(); err != nil {
		return PageSettings{}, err
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE seo_pages
		SET page_title = ?, meta_title = ?, meta_description = ?, keywords = ?, canonical_url = ?,
			no_index = ?, no_follow = ?, priority = ?, change_freq = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE page_id = ?
	`), p.PageTitle, p.MetaTitle, p.MetaDescription, db.JoinList(p.Keywords), p.CanonicalURL,
		p.NoIndex, p.NoFollow, p.Priority, p.ChangeFreq, p.Status, pageID); err != nil {
		return PageSettings{}, fmt.Errorf("update seo page %q: %w", pageID, err)
	}
	return s.GetPage(ctx, pageID)
}
