package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/newindiatimber/timbercraft/internal/auth"
	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/db"
	"github.com/newindiatimber/timbercraft/internal/seo"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SiteURL       string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

const starterPriceDisplay = "Contact for Quote"

// starterProducts fill an empty catalog so the site has something to show.
var starterProducts = []catalog.Input{
	{
		Name:        "Burma Teak Grade A Timber",
		Category:    "teak",
		Grade:       "premium",
		Description: "Seasoned Burma teak for main doors, frames and heirloom furniture.",
		MaterialKey: "burmaTeak",
		Tags:        []string{"teak", "main door", "furniture"},
	},
	{
		Name:        "Ghana Teak Sawn Timber",
		Category:    "teak",
		Grade:       "commercial",
		Description: "Plantation teak for interior doors and windows.",
		MaterialKey: "ghanaTeak",
		Tags:        []string{"teak", "doors", "windows"},
	},
	{
		Name:        "Marine Plywood BWP 18mm",
		Category:    "plywood",
		Grade:       "premium",
		Description: "Boiling water proof plywood for kitchens and bathrooms.",
		MaterialKey: "marinePlywood",
		Tags:        []string{"plywood", "waterproof", "kitchen"},
	},
	{
		Name:        "Century Ply Sainik 710",
		Category:    "plywood",
		Grade:       "commercial",
		Description: "Borer and termite resistant plywood for wardrobes.",
		MaterialKey: "centuryPlySainik",
		Tags:        []string{"plywood", "wardrobe"},
	},
	{
		Name:        "Indian Sal Beams",
		Category:    "hardwood",
		Grade:       "budget",
		Description: "Dense sal wood for frames and structural work.",
		MaterialKey: "indianSal",
		Tags:        []string{"hardwood", "frames"},
	},
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, h *db.Handle, cfg Config) (Stats, error) {
	tx, err := h.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	s := seeder{tx: tx, h: h}

	steps := []func(context.Context) error{
		func(ctx context.Context) error { return s.admin(ctx, cfg.AdminEmail, cfg.AdminPassword) },
		func(ctx context.Context) error { return s.globalSEO(ctx, cfg.SiteURL) },
		s.pages,
		s.products,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return s.stats, nil
}

type seeder struct {
	tx    *sql.Tx
	h     *db.Handle
	stats Stats
}

func (s *seeder) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	err := s.tx.QueryRowContext(ctx, s.h.Rebind(`SELECT EXISTS(`+query+`)`), args...).Scan(&exists)
	return exists, err
}

func (s *seeder) admin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.exists(ctx, `SELECT 1 FROM users WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := s.tx.ExecContext(ctx, s.h.Rebind(`INSERT INTO users (email, password_hash) VALUES (?, ?)`), email, hash); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	s.stats.Inserts++
	return nil
}

func (s *seeder) globalSEO(ctx context.Context, siteURL string) error {
	exists, err := s.exists(ctx, `SELECT 1 FROM seo_global WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("check global seo existence: %w", err)
	}
	if exists {
		return nil
	}

	g := seo.DefaultGlobal(siteURL)
	if _, err := s.tx.ExecContext(ctx, s.h.Rebind(`
		INSERT INTO seo_global (id, site_name, default_title, title_separator, default_description,
			default_keywords, canonical_url, og_image, twitter_site, updated_by)
		VALUES (1, `+db.Placeholders(9)+`)
	`), g.SiteName, g.DefaultTitle, g.TitleSeparator, g.DefaultDescription, db.JoinList(g.DefaultKeywords),
		g.CanonicalURL, g.OGImage, g.TwitterSite, g.UpdatedBy); err != nil {
		return fmt.Errorf("insert global seo singleton: %w", err)
	}
	s.stats.Inserts++
	return nil
}

func (s *seeder) pages(ctx context.Context) error {
	for _, p := range seo.DefaultPages() {
		exists, err := s.exists(ctx, `SELECT 1 FROM seo_pages WHERE page_id = ?`, p.PageID)
		if err != nil {
			return fmt.Errorf("check seo page %q existence: %w", p.PageID, err)
		}
		if exists {
			continue
		}

		if _, err := s.tx.ExecContext(ctx, s.h.Rebind(`
			INSERT INTO seo_pages (page_id, path, page_title, keywords, no_index, no_follow, priority, change_freq, status)
			VALUES (`+db.Placeholders(9)+`)
		`), p.PageID, p.Path, p.PageTitle, db.JoinList(p.Keywords), p.NoIndex, p.NoFollow, p.Priority, p.ChangeFreq, p.Status); err != nil {
			return fmt.Errorf("insert seo page %q: %w", p.PageID, err)
		}
		s.stats.Inserts++
	}
	return nil
}

// products only seeds an empty catalog, so products removed by an admin stay removed.
func (s *seeder) products(ctx context.Context) error {
	exists, err := s.exists(ctx, `SELECT 1 FROM products`)
	if err != nil {
		return fmt.Errorf("check product existence: %w", err)
	}
	if exists {
		return nil
	}

	for _, p := range starterProducts {
		if _, err := s.tx.ExecContext(ctx, s.h.Rebind(`
			INSERT INTO products (slug, name, category, grade, description, material_key, price_display, tags)
			VALUES (`+db.Placeholders(8)+`)
		`), catalog.Slugify(p.Name), p.Name, p.Category, p.Grade, p.Description, p.MaterialKey, starterPriceDisplay, db.JoinList(p.Tags)); err != nil {
			return fmt.Errorf("insert starter product %q: %w", p.Name, err)
		}
		s.stats.Inserts++
	}
	return nil
}
