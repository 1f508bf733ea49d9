// Package reports renders tabular business reports as PDF documents.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Kind string

const (
	KindInventory Kind = "inventory"
	KindLowStock  Kind = "low-stock"
	KindSales     Kind = "sales"
)

// ParseKind returns a validation error for anything but the known kinds.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindInventory, KindLowStock, KindSales:
		return k, nil
	}
	return "", common.NewValidationError(fmt.Sprintf("Unknown report type %q", s))
}

func (k Kind) Title() string {
	switch k {
	case KindInventory:
		return "Inventory Report"
	case KindLowStock:
		return "Low Stock Report"
	case KindSales:
		return "Sales Report"
	}
	return "Report"
}

// Row is one table line. Date is blank for stock reports.
type Row struct {
	Date     string
	Product  string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
}

type Report struct {
	Kind        Kind
	GeneratedAt time.Time
	Rows        []Row
}

// Totals sums quantity and value over all rows.
func (r *Report) Totals() (int, decimal.Decimal) {
	qty, total := 0, decimal.Zero
	for _, row := range r.Rows {
		qty += row.Quantity
		total = total.Add(row.Total)
	}
	return qty, total
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators and two decimals.
func FormatMoney(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 30, "C"},
	{"Product", 60, "L"},
	{"Quantity", 25, "R"},
	{"Price", 35, "R"},
	{"Total Value", 40, "R"},
}

// Render lays the report out on A4 pages and returns the PDF bytes.
func Render(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Kind.Title(), true)
	pdf.SetCreator("PitchPoa", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.Kind.Title(), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	qty, total := r.Totals()
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Items: "+formatInt(qty), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Total value: "+FormatMoney(total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 9, col.title, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range r.Rows {
		cells := []string{row.Date, tr(row.Product), formatInt(row.Quantity), FormatMoney(row.Price), FormatMoney(row.Total)}
		for i, col := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 8, cells[i], "1", ln, col.align, false, 0, "")
		}
	}
	if len(r.Rows) == 0 {
		pdf.CellFormat(190, 8, "No records", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
