// Package report renders a day-by-day run of a facility as an xlsx workbook
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/osse101/FactorySim_Go/internal/factory"
)

// DayRow is one simulated day
type DayRow struct {
	factory.DayReport
	Produced int
	Crafted  int
	Open     int
	Overdue  int
}

// Recorder accumulates day rows for a run
type Recorder struct {
	days []DayRow
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the outcome of one day. The time reports are the hours
// advanced during that day; the status is taken after the rollover.
func (r *Recorder) Record(day factory.DayReport, advanced []factory.TimeReport, status factory.Status) {
	row := DayRow{DayReport: day}
	for _, t := range advanced {
		row.Produced += len(t.Productions)
		row.Crafted += len(t.Craftings)
	}
	for _, o := range status.Orders {
		if o.Completed {
			continue
		}
		row.Open++
		if o.Overdue {
			row.Overdue++
		}
	}
	r.days = append(r.days, row)
}

// Days returns the recorded rows
func (r *Recorder) Days() []DayRow {
	return append([]DayRow(nil), r.days...)
}

// Workbook builds the report: a Days sheet, the closing stock and the order book
func (r *Recorder) Workbook(final factory.Status) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetDays); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetStock, SheetOrders} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	days := make([][]any, 0, len(r.days))
	for _, d := range r.days {
		days = append(days, []any{
			d.Day, d.Clock.Format(DateLayout), d.Payroll, d.Profit, d.Balance,
			d.Shortfall, d.Produced, d.Crafted, d.Open, d.Overdue,
		})
	}

	var stock [][]any
	for _, m := range final.Materials {
		stock = append(stock, []any{KindMaterial, m.Name, m.Quantity, m.Unit})
	}
	for _, p := range final.Products {
		stock = append(stock, []any{KindProduct, p.Name, p.Quantity, p.Unit})
	}

	orders := make([][]any, 0, len(final.Orders))
	for _, o := range final.Orders {
		state := OrderOpen
		switch {
		case o.Completed:
			state = OrderCompleted
		case o.Overdue:
			state = OrderOverdue
		}
		orders = append(orders, []any{
			o.ID, o.Product, o.Quantity, o.CompletedQuantity, o.UnitPrice, o.Deadline.Format(DateLayout), state,
		})
	}

	for _, sheet := range []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{SheetDays, dayHeaders, days},
		{SheetStock, stockHeaders, stock},
		{SheetOrders, orderHeaders, orders},
	} {
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet.name, err)
		}
	}
	return f, nil
}

// WriteFile saves the workbook to path
func (r *Recorder) WriteFile(path string, final factory.Status) error {
	f, err := r.Workbook(final)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(len(h)+4)); err != nil {
			return err
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
