package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"amabackend/internal/domain"
	"amabackend/internal/domain/models"
	"amabackend/internal/query"
)

func TestExportAmaRendersPDF(t *testing.T) {
	var seen *models.AmaParams
	limit := uint64(10)
	params := &models.AmaParams{Limit: &limit}

	svc := ExportService{
		Now: func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) },
		Loader: func(_ context.Context, p *models.AmaParams) ([]models.AmaList, error) {
			seen = p
			return []models.AmaList{
				{ID: 1, Content: "Quarterly review", Status: domain.StatusActive, EffectiveDate: query.NewDate(2024, 1, 1)},
				{ID: 2, Content: "", Status: domain.StatusInactive},
			}, nil
		},
	}

	pdf, filename, err := svc.ExportAma(context.Background(), params)
	if err != nil {
		t.Fatalf("ExportAma returned error: %v", err)
	}
	if seen != params {
		t.Fatalf("loader did not receive the list query")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "AMA_20240601_093000.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestExportAmaEmptyAndFailure(t *testing.T) {
	empty := ExportService{Loader: func(context.Context, *models.AmaParams) ([]models.AmaList, error) {
		return []models.AmaList{}, nil
	}}
	if pdf, _, err := empty.ExportAma(context.Background(), nil); err != nil || len(pdf) == 0 {
		t.Fatalf("expected empty list to render, got %v", err)
	}

	boom := errors.New("boom")
	failing := ExportService{Loader: func(context.Context, *models.AmaParams) ([]models.AmaList, error) {
		return nil, boom
	}}
	if _, _, err := failing.ExportAma(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 10); got != "abcdef" {
		t.Fatalf("unexpected %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("unexpected %q", got)
	}
}
