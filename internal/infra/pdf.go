package infra

// pdf.go — analytics report rendering using go-pdf/fpdf.
// Produces a one-page A4 summary: KPI block, best sellers, and category
// contribution. The output file is saved to storagePath/report_{store}_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sellerhub/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateSalesReportPDF renders the KPI summary and rankings for one store.
// storagePath is created if needed; the absolute file path is returned.
func GenerateSalesReportPDF(storeName, storeID string, metrics *dto.SellerMetrics, rankings *dto.SalesRankings, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("report_%s_%s.pdf", storeID, time.Now().Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Sales Performance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, storeName, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── KPI block ────────────────────────────────────────────────────────────
	kpis := []struct{ label, value string }{
		{"Total investment", metrics.TotalInvestment.StringFixed(2)},
		{"Total sales value", metrics.TotalSalesValue.StringFixed(2)},
		{"Total profit", metrics.TotalProfit.StringFixed(2)},
		{"Profit margin", metrics.ProfitMargin.StringFixed(2) + " %"},
		{"Stock value", metrics.StockValue.StringFixed(2)},
		{"Out of stock", metrics.OutOfStockPercentage.StringFixed(2) + " %"},
	}
	labelW := contentW * 0.55
	valueW := contentW * 0.45
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Key Performance Indicators", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, kpi := range kpis {
		pdf.CellFormat(labelW, 6, kpi.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, kpi.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Best sellers ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Best Selling Products", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(rankings.BestSelling) == 0 {
		pdf.CellFormat(contentW, 6, "No sales recorded.", "", 1, "L", false, 0, "")
	}
	for i, entry := range rankings.BestSelling {
		pdf.CellFormat(labelW, 6, fmt.Sprintf("%d. %s", i+1, entry.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, fmt.Sprintf("%d units", entry.TotalQuantitySold), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Category contribution ────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Sales by Category", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range rankings.CategoryContribution {
		pdf.CellFormat(labelW, 6, entry.Category, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, entry.TotalSalesValue.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
