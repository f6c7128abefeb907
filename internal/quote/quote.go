// Package quote renders a project estimate as an xlsx workbook.
package quote

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/newindiatimber/timbercraft/internal/estimator"
)

const sheet = "Quote"

var itemHeaders = []string{"Item", "Type", "Material", "Dimensions", "Quantity", "Unit Price", "Total"}

// breakdownOrder is the display order of the category buckets.
var breakdownOrder = []string{"doors", "windows", "custom"}

// Filename is the attachment name of a quote exported at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("quote-%s.xlsx", now.Format("20060102-1504"))
}

// Export writes est and its suggestions to w as a single-sheet workbook.
func Export(w io.Writer, materials *estimator.Catalog, est estimator.ProjectEstimate, suggestions []string, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename quote sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}

	b := &builder{f: f, bold: bold, row: 1}

	b.heading("New India Timber Quote")
	b.pair("Project Type", est.ProjectType)
	b.pair("Area (sq ft)", est.AreaSize)
	b.pair("Date", now.Format("2006-01-02"))
	b.row++

	b.header(itemHeaders...)
	for _, it := range est.Items {
		b.line(it.Name, string(it.Type), materials.DisplayName(it.Material), dimensions(it.Dimensions), it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	b.row++

	b.heading("Breakdown")
	for _, bucket := range breakdownOrder {
		b.pair(bucket, est.Breakdown[bucket])
	}
	b.row++

	b.heading("Material Summary")
	names := make([]string, 0, len(est.MaterialSummary))
	for name := range est.MaterialSummary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.pair(name, est.MaterialSummary[name])
	}
	b.row++

	b.pair("Subtotal", est.Subtotal)
	b.pair("Adjusted Total", est.AdjustedTotal)
	b.pair("Bulk Discount", strconv.FormatFloat(est.DiscountRate*100, 'f', -1, 64)+"%")
	b.boldPair("Total", est.TotalCost)

	if len(suggestions) > 0 {
		b.row++
		b.heading("Suggestions")
		for _, s := range suggestions {
			b.line(s)
		}
	}

	if b.err != nil {
		return fmt.Errorf("fill quote sheet: %w", b.err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return fmt.Errorf("size quote columns: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write quote workbook: %w", err)
	}
	return nil
}

// builder appends rows to the quote sheet and keeps the first error.
type builder struct {
	f    *excelize.File
	bold int
	row  int
	err  error
}

func (b *builder) line(values ...any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, b.row)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetSheetRow(sheet, cell, &values)
	b.row++
}

func (b *builder) styleRow(cols int) {
	if b.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(1, b.row-1)
	to, _ := excelize.CoordinatesToCellName(cols, b.row-1)
	b.err = b.f.SetCellStyle(sheet, from, to, b.bold)
}

func (b *builder) heading(title string) {
	b.line(title)
	b.styleRow(1)
}

func (b *builder) header(titles ...string) {
	values := make([]any, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	b.line(values...)
	b.styleRow(len(titles))
}

func (b *builder) pair(label string, value any) {
	b.line(label, value)
}

func (b *builder) boldPair(label string, value any) {
	b.line(label, value)
	b.styleRow(2)
}

func dimensions(d estimator.Dimensions) string {
	s := formatNumber(d.Width) + " x " + formatNumber(d.Height)
	if d.Depth > 0 {
		s += " x " + formatNumber(d.Depth)
	}
	return s + " " + string(d.Unit)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
