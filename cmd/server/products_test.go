package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newindiatimber/timbercraft/internal/catalog"
)

type productsResponse struct {
	Products []catalog.Product `json:"products"`
}

func TestHandleProductsList(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[productsResponse](t, rr)
	require.Len(t, all.Products, 5)
	assert.Equal(t, "hardwood", all.Products[0].Category)

	plywood := decode[productsResponse](t, env.do(t, http.MethodGet, "/api/products?category=plywood", nil))
	assert.Len(t, plywood.Products, 2)

	search := decode[productsResponse](t, env.do(t, http.MethodGet, "/api/products?q=WARDROBE", nil))
	require.Len(t, search.Products, 1)
	assert.Equal(t, "century-ply-sainik-710", search.Products[0].Slug)

	none := env.do(t, http.MethodGet, "/api/products?category=bamboo", nil)
	assert.JSONEq(t, `{"products": []}`, none.Body.String())
}

func TestHandleProductDetail(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/products/burma-teak-grade-a-timber", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p := decode[catalog.Product](t, rr)
	assert.Equal(t, "Burma Teak Grade A Timber", p.Name)
	assert.Equal(t, 3500.0, p.PricePerSqFt)
	assert.Equal(t, "Contact for Quote", p.PriceDisplay)

	rr = env.do(t, http.MethodGet, "/api/products/pine-plank", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminProducts_RequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/admin/products"},
		{http.MethodPost, "/admin/products"},
		{http.MethodPut, "/admin/products/burma-teak-grade-a-timber"},
	} {
		rr := env.do(t, req.method, req.path, catalog.Input{Name: "x"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", req.method, req.path)
	}
}

func TestAdminProductCreate(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	in := catalog.Input{
		Name:        "Pine Wood Planks",
		Category:    "softwood",
		Description: "Light planks for crates and shelving.",
		MaterialKey: "pineWood",
		Tags:        []string{"pine", "shelving"},
	}

	rr := env.do(t, http.MethodPost, "/admin/products", in, session)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	p := decode[catalog.Product](t, rr)
	assert.Equal(t, "pine-wood-planks", p.Slug)
	assert.Equal(t, 1200.0, p.PricePerSqFt)
	assert.True(t, p.Active)

	rr = env.do(t, http.MethodPost, "/admin/products", in, session)
	assert.Equal(t, http.StatusConflict, rr.Code)

	in.Slug = "pine-other"
	in.Category = "metal"
	rr = env.do(t, http.MethodPost, "/admin/products", in, session)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "category", decode[errorResponse](t, rr).Field)
}

func TestAdminProductUpdate_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	inactive := false
	rr := env.do(t, http.MethodPut, "/admin/products/indian-sal-beams", productUpdateRequest{
		Input: catalog.Input{
			Name:        "Indian Sal Beams",
			Category:    "hardwood",
			Grade:       "budget",
			MaterialKey: "indianSal",
			StockStatus: "low_stock",
		},
		Active: &inactive,
	}, session)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p := decode[catalog.Product](t, rr)
	assert.False(t, p.Active)
	assert.Equal(t, "low_stock", p.StockStatus)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/products/indian-sal-beams", nil).Code)
	public := decode[productsResponse](t, env.do(t, http.MethodGet, "/api/products", nil))
	assert.Len(t, public.Products, 4)

	admin := decode[productsResponse](t, env.do(t, http.MethodGet, "/admin/products", nil, session))
	assert.Len(t, admin.Products, 5)

	rr = env.do(t, http.MethodPut, "/admin/products/missing", productUpdateRequest{Input: catalog.Input{Name: "X", Category: "teak"}}, session)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
