package quote

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/newindiatimber/timbercraft/internal/estimator"
)

var exportedAt = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func sampleEstimate() estimator.ProjectEstimate {
	return estimator.ComputeProjectEstimate("residential", 800, []estimator.EstimatorItem{
		{
			Type:       estimator.ItemDoor,
			Name:       "Bedroom Door",
			Dimensions: estimator.Dimensions{Width: 3, Height: 7, Unit: estimator.UnitFeet},
			Material:   "ghanaTeak",
			Style:      "flush",
			Finish:     "natural",
			Quantity:   1,
		},
		{
			Type:       estimator.ItemCustom,
			Name:       "Kitchen Cabinet",
			Dimensions: estimator.Dimensions{Width: 2, Height: 3, Depth: 1.5, Unit: estimator.UnitFeet},
			Material:   "marinePlywood",
			Quantity:   1,
		},
	})
}

func export(t *testing.T, est estimator.ProjectEstimate, suggestions []string) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, estimator.DefaultCatalog(), est, suggestions, exportedAt))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// labels maps the first column of every two-cell row to its second cell.
func labels(t *testing.T, f *excelize.File) map[string]string {
	t.Helper()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	out := map[string]string{}
	for _, row := range rows {
		if len(row) == 2 {
			out[row[0]] = row[1]
		}
	}
	return out
}

func TestExport(t *testing.T) {
	f := export(t, sampleEstimate(), nil)

	assert.Equal(t, []string{"Quote"}, f.GetSheetList())

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "New India Timber Quote", title)

	got := labels(t, f)
	assert.Equal(t, "residential", got["Project Type"])
	assert.Equal(t, "800", got["Area (sq ft)"])
	assert.Equal(t, "2026-10-14", got["Date"])
	assert.Equal(t, "98784", got["doors"])
	assert.Equal(t, "0", got["windows"])
	assert.Equal(t, "49140", got["custom"])
	assert.Equal(t, "21", got["Ghana Teak"])
	assert.Equal(t, "9", got["Marine Plywood"])
	assert.Equal(t, "147924", got["Subtotal"])
	assert.Equal(t, "147924", got["Adjusted Total"])
	assert.Equal(t, "0%", got["Bulk Discount"])
	assert.Equal(t, "147924", got["Total"])
}

func TestExport_ItemRows(t *testing.T) {
	f := export(t, sampleEstimate(), nil)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	var header int
	for i, row := range rows {
		if len(row) > 0 && row[0] == "Item" {
			header = i
			break
		}
	}
	require.NotZero(t, header)
	assert.Equal(t, itemHeaders, rows[header])
	assert.Equal(t, []string{"Bedroom Door", "door", "Ghana Teak", "3 x 7 ft", "1", "98784", "98784"}, rows[header+1])
	assert.Equal(t, []string{"Kitchen Cabinet", "custom", "Marine Plywood", "2 x 3 x 1.5 ft", "1", "49140", "49140"}, rows[header+2])

	headerCell, err := excelize.CoordinatesToCellName(1, header+1)
	require.NoError(t, err)
	style, err := f.GetCellStyle(sheet, headerCell)
	require.NoError(t, err)
	assert.NotZero(t, style)
}

func TestExport_DiscountAndSuggestions(t *testing.T) {
	est := estimator.ComputeProjectEstimate("commercial", 800, []estimator.EstimatorItem{{
		Type:       estimator.ItemCustom,
		Name:       "Staircase",
		Dimensions: estimator.Dimensions{Width: 3, Height: 10, Depth: 12, Unit: estimator.UnitFeet},
		Material:   "burmaTeak",
		Quantity:   1,
	}})
	suggestions := estimator.SuggestAlternatives(est.Items)
	require.NotEmpty(t, suggestions)

	f := export(t, est, suggestions)
	got := labels(t, f)
	assert.Equal(t, "5%", got["Bulk Discount"])

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, []string{suggestions[len(suggestions)-1]}, last)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "quote-20261014-0930.xlsx", Filename(exportedAt))
}
