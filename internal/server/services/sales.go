package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/dbx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

// SaleService records sales and keeps inventory stock in step with them.
type SaleService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSaleService(db *sqlx.DB, m repomanager.RepositoryManager) *SaleService {
	return &SaleService{db: db, repomanager: m, now: time.Now}
}

func validateSale(in *models.SaleInput, create bool) error {
	var v validator
	v.name("productName", in.ProductName, create)
	v.count("quantity", in.Quantity, create, 1)
	v.money("amount", in.Amount, create, true)
	v.text(in.CustomerName)
	v.text(in.PaymentMethod)
	return v.err
}

// Create records the sale. When the user tracks an inventory item with the
// same name, its stock is decremented in the same transaction; a sale larger
// than the stock on hand fails with common.ErrorInsufficientStock.
func (s *SaleService) Create(ctx context.Context, userID string, in *models.SaleInput) (*models.Sale, error) {
	if err := validateSale(in, true); err != nil {
		return nil, err
	}
	sale := &models.Sale{
		UserID:        userID,
		ProductName:   *in.ProductName,
		Quantity:      *in.Quantity,
		Amount:        *in.Amount,
		Date:          dateOr(in.Date, s.now().UTC()),
		CustomerName:  deref(in.CustomerName),
		PaymentMethod: deref(in.PaymentMethod),
		Notes:         deref(in.Notes),
	}

	var out *models.Sale
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv := s.repomanager.Inventory(tx)
		item, err := inv.GetByNameForUpdate(ctx, userID, sale.ProductName)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			// product is not tracked in inventory
		case err != nil:
			return fmt.Errorf("error locking inventory item: %w", err)
		default:
			if item.CurrentStock < sale.Quantity {
				return common.ErrorInsufficientStock
			}
			if err := inv.AdjustStock(ctx, userID, item.ID, -sale.Quantity); err != nil {
				return fmt.Errorf("error adjusting stock: %w", err)
			}
		}

		out, err = s.repomanager.Sales(tx).Create(ctx, sale)
		if err != nil {
			return fmt.Errorf("error recording sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SaleService) List(ctx context.Context, userID string) ([]*models.Sale, error) {
	return s.repomanager.Sales(s.db).List(ctx, userID, 0)
}

// Update edits the ledger entry only; stock is not re-balanced.
func (s *SaleService) Update(ctx context.Context, userID, id string, in *models.SaleInput) (*models.Sale, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := validateSale(in, false); err != nil {
		return nil, err
	}
	return s.repomanager.Sales(s.db).Update(ctx, userID, id, in)
}

func (s *SaleService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Sales(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting sale: %w", err)
	}
	return nil
}

// Summary totals the user's sales overall and per product.
func (s *SaleService) Summary(ctx context.Context, userID string) (*SalesSummary, error) {
	list, err := s.repomanager.Sales(s.db).List(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	return SummarizeSales(list), nil
}
