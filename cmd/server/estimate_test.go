package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/newindiatimber/timbercraft/internal/estimator"
)

func ghanaDoor() estimator.EstimatorItem {
	return estimator.EstimatorItem{
		ID:         "door-1",
		Type:       estimator.ItemDoor,
		Name:       "Bedroom Door",
		Dimensions: estimator.Dimensions{Width: 3, Height: 7, Unit: estimator.UnitFeet},
		Material:   "ghanaTeak",
		Style:      "flush",
		Finish:     "natural",
		Quantity:   1,
	}
}

func oakWindows() estimator.EstimatorItem {
	return estimator.EstimatorItem{
		ID:         "window-1",
		Type:       estimator.ItemWindow,
		Name:       "Bedroom Window",
		Dimensions: estimator.Dimensions{Width: 3, Height: 4, Unit: estimator.UnitFeet},
		Material:   "oakWood",
		Style:      "casement",
		Finish:     "natural",
		Quantity:   2,
	}
}

func TestHandleEstimate(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/estimate", estimateRequest{
		ProjectType: "residential",
		AreaSize:    800,
		Items:       []estimator.EstimatorItem{ghanaDoor(), oakWindows()},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[estimateResponse](t, rr)
	assert.Equal(t, 196224.0, got.Estimate.TotalCost)
	assert.Equal(t, 98784.0, got.Estimate.Items[0].TotalPrice)
	assert.Equal(t, 97440.0, got.Estimate.Items[1].TotalPrice)
	assert.Equal(t, 97440.0, got.Estimate.Breakdown["windows"])
	assert.NotNil(t, got.Suggestions)
}

func TestHandleEstimate_UnknownMaterialPricesAtZero(t *testing.T) {
	env := newTestEnv(t)

	item := ghanaDoor()
	item.Material = "unobtainium"
	rr := env.do(t, http.MethodPost, "/api/estimate", estimateRequest{ProjectType: "residential", Items: []estimator.EstimatorItem{item}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[estimateResponse](t, rr)
	assert.Equal(t, 0.0, got.Estimate.TotalCost)
	assert.Empty(t, got.Suggestions)
}

func TestHandleEstimate_Rejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		edit func(*estimator.EstimatorItem)
		want string
	}{
		{"zero width", func(i *estimator.EstimatorItem) { i.Dimensions.Width = 0 }, "width and height must be greater than 0"},
		{"negative height", func(i *estimator.EstimatorItem) { i.Dimensions.Height = -1 }, "width and height must be greater than 0"},
		{"negative depth", func(i *estimator.EstimatorItem) { i.Dimensions.Depth = -1 }, "depth cannot be negative"},
		{"zero quantity", func(i *estimator.EstimatorItem) { i.Quantity = 0 }, "quantity must be at least 1"},
		{"missing material", func(i *estimator.EstimatorItem) { i.Material = "" }, "material is required"},
		{"missing name", func(i *estimator.EstimatorItem) { i.Name = "" }, "name is required"},
		{"unknown type", func(i *estimator.EstimatorItem) { i.Type = "gate" }, "type must be one of door, window, custom"},
		{"unknown unit", func(i *estimator.EstimatorItem) { i.Dimensions.Unit = "cm" }, "unit must be ft or inch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ghanaDoor()
			tt.edit(&item)

			rr := env.do(t, http.MethodPost, "/api/estimate", estimateRequest{
				ProjectType: "residential",
				Items:       []estimator.EstimatorItem{oakWindows(), item},
			})
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "items[1]: "+tt.want, decode[errorResponse](t, rr).Error)
		})
	}
}

func TestHandleEstimate_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/estimate", `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[errorResponse](t, rr).Error, "invalid JSON body")
}

func TestHandleEstimateItem(t *testing.T) {
	env := newTestEnv(t)

	item := oakWindows()
	rr := env.do(t, http.MethodPost, "/api/estimate/item", item)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[estimator.EstimatorItem](t, rr)
	assert.Equal(t, 48720.0, got.UnitPrice)
	assert.Equal(t, 97440.0, got.TotalPrice)
	assert.Equal(t, "window-1", got.ID)

	item.Quantity = 0
	rr = env.do(t, http.MethodPost, "/api/estimate/item", item)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleEstimateQuiz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/estimate/quiz", estimator.QuizAnswers{
		ProjectType: "residential",
		AreaSize:    500,
		Doors:       4,
		Windows:     6,
		Materials:   []string{"burmaTeak", "ghanaTeak"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 491000.0, decode[map[string]float64](t, rr)["estimate"])

	rr = env.do(t, http.MethodPost, "/api/estimate/quiz", estimator.QuizAnswers{Doors: -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleMaterials(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/materials", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[materialsResponse](t, rr)
	require.Len(t, got.Materials, len(estimator.DefaultCatalog().Rates()))
	assert.Equal(t, "burmaTeak", got.Materials[0].Key)
	assert.Equal(t, "Burma Teak", got.Materials[0].DisplayName)
	assert.Equal(t, 3500.0, got.Materials[0].PricePerUnitArea)
	assert.NotEmpty(t, got.Styles)
	assert.NotEmpty(t, got.Finishes)
}

func TestHandleTemplates(t *testing.T) {
	env := newTestEnv(t)

	type response struct {
		Templates []estimator.ItemTemplate `json:"templates"`
	}

	all := decode[response](t, env.do(t, http.MethodGet, "/api/templates", nil))
	assert.Len(t, all.Templates, 14)

	doors := decode[response](t, env.do(t, http.MethodGet, "/api/templates?type=door", nil))
	require.Len(t, doors.Templates, 4)
	assert.Equal(t, "bedroom-door", doors.Templates[0].ID)

	rr := env.do(t, http.MethodGet, "/api/templates?type=gate", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"templates": []}`, rr.Body.String())
}

func TestHandleQuickStart(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/estimate/quick-start?area=500", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[map[string][]estimator.EstimatorItem](t, rr)
	require.Len(t, got["items"], 5)
	for _, item := range got["items"] {
		assert.NotEmpty(t, item.ID)
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}

	for _, q := range []string{"", "?area=abc", "?area=0", "?area=-20"} {
		rr := env.do(t, http.MethodGet, "/api/estimate/quick-start"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestHandleEstimateExport(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/estimate/export", estimateRequest{
		ProjectType: "residential",
		AreaSize:    800,
		Items:       []estimator.EstimatorItem{ghanaDoor()},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	assert.Equal(t, `attachment; filename="quote-20261014-0930.xlsx"`, rr.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Quote", "B2")
	require.NoError(t, err)
	assert.Equal(t, "residential", value)
}

func TestHandleEstimateExport_Rejects(t *testing.T) {
	env := newTestEnv(t)

	item := ghanaDoor()
	item.Quantity = 0
	rr := env.do(t, http.MethodPost, "/api/estimate/export", estimateRequest{Items: []estimator.EstimatorItem{item}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
