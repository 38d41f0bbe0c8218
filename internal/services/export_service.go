package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"amabackend/internal/domain/models"
	"amabackend/internal/repositories"
	"amabackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders AMA list queries as PDF documents.
type ExportService struct {
	AmaRepo   repositories.AmaRepository
	RequestID string
	Now       func() time.Time
	Loader    func(context.Context, *models.AmaParams) ([]models.AmaList, error)
}

// ExportAma runs p through the list compiler and renders the result.
func (s ExportService) ExportAma(ctx context.Context, p *models.AmaParams) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.AmaRepo.Find
	}
	rows, err := load(ctx, p)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(s.RequestID, "export", "ama_pdf", "rendering ama list", "rows", len(rows))
	return buildAmaListPDF(rows, now)
}

func buildAmaListPDF(rows []models.AmaList, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("AMA List", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "AMA LIST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated : "+now.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Records   : %d", len(rows)))
	pdf.Ln(10)

	widths := []float64{20, 180, 30, 40}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"ID", "Content", "Status", "Effective"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		date := "-"
		if !r.EffectiveDate.IsZero() {
			date = r.EffectiveDate.String()
		}
		cells := []string{
			fmt.Sprintf("%d", r.ID),
			truncate(safe(r.Content, "-"), 95),
			safe(string(r.Status), "-"),
			date,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, "No records matched the query.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("AMA_%s.pdf", now.Format("20060102_150405")), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
