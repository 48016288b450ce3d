package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"streampulse/internal/income"
	"streampulse/pkg/contracts/domain"
)

// WriteReportWorkbook writes an xlsx report with a batch summary sheet and
// the creator leaderboard.
func WriteReportWorkbook(w io.Writer, summary domain.BatchSummary, entries []domain.LeaderboardEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName(f.GetSheetName(0), summarySheet)

	kpis := [][]interface{}{
		{"Sessions", summary.Sessions},
		{"Creators", summary.Creators},
		{"Total GMV (Live)", summary.TotalGMVLive},
		{"Average GMV (Live)", summary.AvgGMVLive},
		{"Total Viewers", summary.TotalViewers},
		{"Total Orders", summary.TotalOrders},
		{"Average Engagement Rate (%)", summary.AvgEngagementRate},
		{"Average Conversion Rate (%)", summary.AvgConversionCalc},
		{"Average Performance Score", summary.AvgPerformance},
	}
	for i, row := range kpis {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i, err)
		}
	}
	for i, warning := range summary.QualityWarnings {
		cell, _ := excelize.CoordinatesToCellName(1, len(kpis)+2+i)
		warnRow := []interface{}{"Warning", warning}
		if err := f.SetSheetRow(summarySheet, cell, &warnRow); err != nil {
			return fmt.Errorf("write warning row %d: %w", i, err)
		}
	}

	const boardSheet = "Leaderboard"
	if _, err := f.NewSheet(boardSheet); err != nil {
		return fmt.Errorf("create leaderboard sheet: %w", err)
	}
	header := []interface{}{
		"Rank", "Creator", "Sessions", "Total GMV", "Total Viewers",
		"Total Orders", "Avg Engagement (%)", "Avg Revenue/Viewer",
		"Avg Conversion (%)", "Avg Score", "Segment",
	}
	if err := f.SetSheetRow(boardSheet, "A1", &header); err != nil {
		return fmt.Errorf("write leaderboard header: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		row := []interface{}{
			e.Rank, e.CreatorID, e.Sessions, e.TotalGMVLive, e.TotalViewers,
			e.TotalOrders, e.AvgEngagementRate, e.AvgRevenuePerView,
			e.AvgConversionCalc, e.AvgPerformance, e.ClusterName,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(boardSheet, cell, &row); err != nil {
			return fmt.Errorf("write leaderboard row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteIncomeWorkbook writes the income merge summary with its totals row.
func WriteIncomeWorkbook(w io.Writer, rows []income.SummaryRow, totals income.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Income Summary"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []interface{}{
		"Seller SKU", "Product Name", "Variation", "Total Qty", "Revenue",
		"Cost per Unit", "Total Cost", "Profit", "Share 60%", "Share 40%",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		row := []interface{}{
			r.SellerSKU, r.ProductName, r.Variation, r.TotalQty, r.Revenue,
			r.CostPerUnit, r.TotalCost, r.Profit, r.Share60, r.Share40,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	totalsRow := []interface{}{
		"TOTAL", "", "", "", totals.TotalRevenue, "", totals.TotalCost,
		totals.TotalProfit, totals.Share60, totals.Share40,
	}
	cell, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
	if err := f.SetSheetRow(sheet, cell, &totalsRow); err != nil {
		return fmt.Errorf("write totals row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
