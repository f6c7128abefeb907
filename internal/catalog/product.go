package catalog

import (
	"errors"
	"strings"
	"unicode"

	"github.com/newindiatimber/timbercraft/internal/estimator"
	"github.com/newindiatimber/timbercraft/internal/validate"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrSlugTaken = errors.New("product slug already exists")
)

var (
	Categories    = []string{"teak", "plywood", "hardwood", "softwood", "engineered"}
	Grades        = []string{"premium", "commercial", "budget"}
	StockStatuses = []string{"in_stock", "low_stock", "out_of_stock"}
)

// Product is a catalog entry. MaterialKey links it to an estimator rate;
// PricePerSqFt is filled from that rate when served and never stored.
type Product struct {
	ID           int64    `json:"id"`
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Grade        string   `json:"grade"`
	Description  string   `json:"description"`
	MaterialKey  string   `json:"materialKey,omitempty"`
	PriceDisplay string   `json:"priceDisplay"`
	StockStatus  string   `json:"stockStatus"`
	Tags         []string `json:"tags"`
	Active       bool     `json:"active"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`

	PricePerSqFt float64 `json:"pricePerSqFt,omitempty"`
}

// Input is the writable part of a Product.
type Input struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Grade        string   `json:"grade"`
	Description  string   `json:"description"`
	MaterialKey  string   `json:"materialKey"`
	PriceDisplay string   `json:"priceDisplay"`
	StockStatus  string   `json:"stockStatus"`
	Tags         []string `json:"tags"`
}

func (in *Input) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Grade = strings.ToLower(strings.TrimSpace(in.Grade))
	in.StockStatus = strings.ToLower(strings.TrimSpace(in.StockStatus))
	if in.Grade == "" {
		in.Grade = "commercial"
	}
	if in.StockStatus == "" {
		in.StockStatus = "in_stock"
	}
	if in.PriceDisplay == "" {
		in.PriceDisplay = "Contact for Quote"
	}
	in.Slug = Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
}

// Validate reports the first invalid field. The estimator material key is optional
// but must exist when given.
func (in Input) Validate(materials *estimator.Catalog) error {
	if err := validate.First(
		validate.Required("name", in.Name),
		validate.OneOf("category", in.Category, Categories...),
		validate.OneOf("grade", in.Grade, Grades...),
		validate.OneOf("stockStatus", in.StockStatus, StockStatuses...),
	); err != nil {
		return err
	}
	if in.Slug == "" {
		return validate.Fail("slug", "cannot be derived from name")
	}
	if in.MaterialKey != "" {
		if _, ok := materials.Lookup(in.MaterialKey); !ok {
			return validate.Fail("materialKey", "unknown material %q", in.MaterialKey)
		}
	}
	return nil
}

// Slugify lower-cases s and joins its letter and digit runs with single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// WithPrice fills PricePerSqFt from the estimator rate of the product's material.
func WithPrice(p Product, materials *estimator.Catalog) Product {
	if rate, ok := materials.Lookup(p.MaterialKey); ok {
		p.PricePerSqFt = rate.PricePerUnitArea
	}
	return p
}
