package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/reports"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ReportService gathers report rows and renders them to PDF.
type ReportService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewReportService(db *sqlx.DB, m repomanager.RepositoryManager) *ReportService {
	return &ReportService{db: db, repomanager: m, now: time.Now}
}

// Build returns the PDF for kind, which must already be parsed.
func (s *ReportService) Build(ctx context.Context, userID string, kind reports.Kind) ([]byte, error) {
	rows, err := s.rows(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	return reports.Render(&reports.Report{Kind: kind, GeneratedAt: s.now().UTC(), Rows: rows})
}

func (s *ReportService) rows(ctx context.Context, userID string, kind reports.Kind) ([]reports.Row, error) {
	switch kind {
	case reports.KindInventory, reports.KindLowStock:
		repo := s.repomanager.Inventory(s.db)
		var (
			items []*models.InventoryItem
			err   error
		)
		if kind == reports.KindLowStock {
			items, err = repo.ListLowStock(ctx, userID)
		} else {
			items, err = repo.List(ctx, userID)
		}
		if err != nil {
			return nil, err
		}
		rows := make([]reports.Row, 0, len(items))
		for _, it := range items {
			rows = append(rows, reports.Row{
				Product:  it.Name,
				Quantity: it.CurrentStock,
				Price:    it.SellingPrice,
				Total:    it.SellingPrice.Mul(decimal.NewFromInt(int64(it.CurrentStock))),
			})
		}
		return rows, nil

	case reports.KindSales:
		list, err := s.repomanager.Sales(s.db).List(ctx, userID, 0)
		if err != nil {
			return nil, err
		}
		rows := make([]reports.Row, 0, len(list))
		for _, sale := range list {
			unit := decimal.Zero
			if sale.Quantity > 0 {
				unit = sale.Amount.DivRound(decimal.NewFromInt(int64(sale.Quantity)), 2)
			}
			rows = append(rows, reports.Row{
				Date:     sale.Date.Format("2006-01-02"),
				Product:  sale.ProductName,
				Quantity: sale.Quantity,
				Price:    unit,
				Total:    sale.Amount,
			})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unsupported report kind %q", kind)
}
