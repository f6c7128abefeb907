package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/newindiatimber/timbercraft/internal/db"
	"github.com/newindiatimber/timbercraft/internal/estimator"
)

// Filter narrows List. Search matches name, description and tags, case-insensitively.
type Filter struct {
	Category   string
	Search     string
	ActiveOnly bool
}

// Store persists products.
type Store struct {
	db        *db.Handle
	materials *estimator.Catalog
}

// NewStore returns a Store pricing products against materials, or the default
// estimator catalog when materials is nil.
func NewStore(h *db.Handle, materials *estimator.Catalog) *Store {
	if materials == nil {
		materials = estimator.DefaultCatalog()
	}
	return &Store{db: h, materials: materials}
}

const productColumns = `id, slug, name, category, grade, description, material_key,
	price_display, stock_status, tags, active, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (Product, error) {
	var p Product
	var tags string
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Category, &p.Grade, &p.Description, &p.MaterialKey,
		&p.PriceDisplay, &p.StockStatus, &tags, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Tags = db.SplitList(tags)
	return p, nil
}

func (s *Store) List(ctx context.Context, f Filter) ([]Product, error) {
	var where []string
	var args []any
	if f.ActiveOnly {
		where = append(where, "active = ?")
		args = append(args, true)
	}
	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		like := "%" + q + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?)")
		args = append(args, like, like, like)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY category, name`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, WithPrice(p, s.materials))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (Product, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT `+productColumns+` FROM products WHERE slug = ?`), slug)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("query product %q: %w", slug, err)
	}
	return WithPrice(p, s.materials), nil
}

func (s *Store) Create(ctx context.Context, in Input) (Product, error) {
	in.normalize()
	if err := in.Validate(s.materials); err != nil {
		return Product{}, err
	}

	taken, err := s.slugExists(ctx, in.Slug)
	if err != nil {
		return Product{}, err
	}
	if taken {
		return Product{}, ErrSlugTaken
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO products (slug, name, category, grade, description, material_key, price_display, stock_status, tags, active)
		VALUES (`+db.Placeholders(10)+`)
	`), in.Slug, in.Name, in.Category, in.Grade, in.Description, in.MaterialKey, in.PriceDisplay, in.StockStatus,
		db.JoinList(in.Tags), true)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return s.GetBySlug(ctx, in.Slug)
}

// Update replaces the writable fields of the product at slug. The slug itself may
// change when in.Slug is set.
func (s *Store) Update(ctx context.Context, slug string, in Input) (Product, error) {
	if in.Slug == "" {
		in.Slug = slug
	}
	in.normalize()
	if err := in.Validate(s.materials); err != nil {
		return Product{}, err
	}

	if in.Slug != slug {
		taken, err := s.slugExists(ctx, in.Slug)
		if err != nil {
			return Product{}, err
		}
		if taken {
			return Product{}, ErrSlugTaken
		}
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE products
		SET slug = ?, name = ?, category = ?, grade = ?, description = ?, material_key = ?,
			price_display = ?, stock_status = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
		WHERE slug = ?
	`), in.Slug, in.Name, in.Category, in.Grade, in.Description, in.MaterialKey, in.PriceDisplay, in.StockStatus,
		db.JoinList(in.Tags), slug)
	if err != nil {
		return Product{}, fmt.Errorf("update product %q: %w", slug, err)
	}
	if err := requireRow(res); err != nil {
		return Product{}, err
	}
	return s.GetBySlug(ctx, in.Slug)
}

func (s *Store) SetActive(ctx context.Context, slug string, active bool) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE products SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE slug = ?
	`), active, slug)
	if err != nil {
		return fmt.Errorf("set product %q active: %w", slug, err)
	}
	return requireRow(res)
}

func (s *Store) slugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT EXISTS(SELECT 1 FROM products WHERE slug = ?)`), slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check product slug: %w", err)
	}
	return exists, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
