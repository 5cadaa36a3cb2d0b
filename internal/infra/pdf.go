package infra

// pdf.go — subscription invoice generation using go-pdf/fpdf.
// The output file is saved to storagePath/invoice_{subscription_id}.pdf
// and attached to the confirmation email by the worker.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

// GenerateInvoicePDF writes an A5 invoice for a paid subscription and
// returns the absolute path to the generated file.
func GenerateInvoicePDF(acct *model.Account, plan *model.Plan, sub *model.Subscription, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", sub.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "LaunchPOS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Subscription Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Billing details ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Billed to: %s", acct.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Date: %s", time.Now().Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Line item ────────────────────────────────────────────────────────────
	col1 := contentW * 0.55
	col2 := contentW * 0.20
	col3 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Plan", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Interval", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1, 6, plan.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, plan.Interval, "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, fmt.Sprintf("$%s", sub.TotalPrice.StringFixed(2)), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 7, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, fmt.Sprintf("$%s", sub.TotalPrice.StringFixed(2)), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Service period: %s to %s",
		sub.StartsAt.Format("02 Jan 2006"), sub.EndsAt.Format("02 Jan 2006")), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write invoice: %w", err)
	}
	return filePath, nil
}
