// Package report renders a monthly PDF statement of the ledger.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// MaxRows caps the transaction table.
const MaxRows = 200

// Statement is everything printed for one calendar month.
type Statement struct {
	Year     int
	Month    time.Month
	Currency string

	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Net            decimal.Decimal
	ClosingBalance decimal.Decimal
	Categories     []model.CategoryTotal
	Transactions   []model.Transaction
	Goals          []dashboard.GoalView
	Health         model.HealthScore
	GeneratedAt    time.Time
}

// NewStatement collects the month containing month from a snapshot and the
// full ledger. The closing balance counts every transaction up to month end.
func NewStatement(snap dashboard.Snapshot, txs []model.Transaction, month time.Time, now time.Time) Statement {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	inMonth := pipeline.FilterByDateRange(txs, start, end)
	sort.SliceStable(inMonth, func(i, j int) bool {
		return inMonth[i].Date.Before(inMonth[j].Date)
	})
	totals := pipeline.Totals(inMonth)

	return Statement{
		Year:           start.Year(),
		Month:          start.Month(),
		Currency:       snap.Settings.Currency,
		Income:         totals.Income,
		Expenses:       totals.Expenses,
		Net:            totals.Balance,
		ClosingBalance: pipeline.Totals(pipeline.FilterByDateRange(txs, time.Time{}, end)).Balance,
		Categories:     pipeline.CategoryTotals(inMonth),
		Transactions:   inMonth,
		Goals:          snap.ActiveGoals(),
		Health:         snap.Health,
		GeneratedAt:    now,
	}
}

// Title is the statement heading, e.g. "Statement June 2025".
func (s Statement) Title() string {
	return fmt.Sprintf("Statement %s %d", s.Month, s.Year)
}

// Filename is the suggested output file name.
func (s Statement) Filename() string {
	return fmt.Sprintf("fintrack-%04d-%02d.pdf", s.Year, int(s.Month))
}

func (s Statement) money(d decimal.Decimal) string {
	return model.FormatMoney(s.Currency, d)
}

func (s Statement) signed(d decimal.Decimal) string {
	return model.FormatSignedMoney(s.Currency, d)
}

// Render writes the statement as a PDF to w.
func Render(w io.Writer, s Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated by fintrack %s  |  page %d",
			s.GeneratedAt.Format(time.RFC3339), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, s.Title())
	pdf.Ln(12)

	// Summary boxes.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetFont("Helvetica", "B", 10)
	sumW := []float64{45.5, 45.5, 45.5, 45.5}
	heads := []string{"Income", "Expenses", "Net", "Closing balance"}
	for i, h := range heads {
		ln := 0
		if i == len(heads)-1 {
			ln = 1
		}
		pdf.CellFormat(sumW[i], 9, h, "1", ln, "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
	vals := []string{s.money(s.Income), s.money(s.Expenses), s.signed(s.Net), s.signed(s.ClosingBalance)}
	for i, v := range vals {
		ln := 0
		if i == len(vals)-1 {
			ln = 1
		}
		pdf.CellFormat(sumW[i], 9, tr(v), "1", ln, "C", false, 0, "")
	}
	pdf.Ln(6)

	if len(s.Categories) > 0 {
		section(pdf, "Spending by category")
		for _, c := range s.Categories {
			pct := 0.0
			if s.Expenses.IsPositive() {
				pct = c.Amount.Div(s.Expenses).InexactFloat64() * 100
			}
			pdf.CellFormat(70, 7, tr(trimTo(c.Category, 40)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, tr(s.money(c.Amount)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(22, 7, fmt.Sprintf("%.1f%%", pct), "1", 0, "R", false, 0, "")
			barW := 50 * pct / 100
			x, y := pdf.GetXY()
			pdf.CellFormat(50, 7, "", "1", 1, "L", false, 0, "")
			if barW > 0 {
				pdf.SetFillColor(90, 130, 200)
				pdf.Rect(x+1, y+2, barW*48/50, 3, "F")
				pdf.SetFillColor(248, 248, 248)
			}
		}
		pdf.Ln(6)
	}

	section(pdf, "Transactions")
	colW := []float64{26, 22, 50, 52, 32}
	txHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)
		for i, h := range []string{"DATE", "TYPE", "CATEGORY", "DESCRIPTION", "AMOUNT"} {
			ln, align := 0, "L"
			if i == 4 {
				ln, align = 1, "R"
			}
			pdf.CellFormat(colW[i], 8, h, "1", ln, align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	txHeader()
	if len(s.Transactions) == 0 {
		pdf.CellFormat(0, 8, "No transactions this month", "1", 1, "C", false, 0, "")
	}
	for i, tx := range s.Transactions {
		if i >= MaxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, fmt.Sprintf("... %d more not shown", len(s.Transactions)-MaxRows), "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 265 {
			pdf.AddPage()
			txHeader()
		}
		typ := string(tx.Type)
		if tx.IsRecurring {
			typ += " (r)"
		}
		pdf.CellFormat(colW[0], 7, tx.Date.Format(model.DateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 7, typ, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 7, tr(trimTo(tx.Category, 28)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 7, tr(trimTo(tx.Description, 30)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 7, tr(s.signed(tx.Signed())), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	if len(s.Goals) > 0 {
		section(pdf, "Active goals")
		for _, g := range s.Goals {
			status := "on track"
			if !g.Progress.OnTrack {
				status = "behind"
			}
			pdf.CellFormat(70, 7, tr(trimTo(g.Goal.Title, 40)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, g.Info.Label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.1f%%", g.Progress.Percentage), "1", 0, "R", false, 0, "")
			pdf.CellFormat(42, 7, status, "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	section(pdf, fmt.Sprintf("Financial health: %d/%d (%s)", s.Health.Score, s.Health.MaxScore, s.Health.Grade))
	for _, f := range s.Health.Factors {
		pdf.CellFormat(60, 7, f.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f / %.0f", f.Score, f.Max), "1", 0, "R", false, 0, "")
		pdf.CellFormat(92, 7, tr(trimTo(f.Message, 60)), "1", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 9)
}

func trimTo(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
