package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

// InventoryService manages a user's stocked items.
type InventoryService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
}

func NewInventoryService(db *sqlx.DB, m repomanager.RepositoryManager) *InventoryService {
	return &InventoryService{db: db, repomanager: m}
}

func validateInventory(in *models.InventoryItemInput, create bool) error {
	var v validator
	v.name("name", in.Name, create)
	v.count("currentStock", in.CurrentStock, create, 0)
	v.count("reorderPoint", in.ReorderPoint, create, 0)
	v.money("costPrice", in.CostPrice, create, false)
	v.money("sellingPrice", in.SellingPrice, create, false)
	v.text(in.Category)
	v.text(in.Supplier)
	return v.err
}

func (s *InventoryService) Create(ctx context.Context, userID string, in *models.InventoryItemInput) (*models.InventoryItem, error) {
	if err := validateInventory(in, true); err != nil {
		return nil, err
	}
	item := &models.InventoryItem{
		UserID:          userID,
		Name:            *in.Name,
		CurrentStock:    *in.CurrentStock,
		ReorderPoint:    *in.ReorderPoint,
		CostPrice:       *in.CostPrice,
		SellingPrice:    *in.SellingPrice,
		Category:        deref(in.Category),
		Supplier:        deref(in.Supplier),
		LastRestockDate: in.LastRestockDate.Ptr(),
		Notes:           deref(in.Notes),
	}
	return s.repomanager.Inventory(s.db).Create(ctx, item)
}

func (s *InventoryService) List(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	return s.repomanager.Inventory(s.db).List(ctx, userID)
}

func (s *InventoryService) LowStock(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	return s.repomanager.Inventory(s.db).ListLowStock(ctx, userID)
}

func (s *InventoryService) Update(ctx context.Context, userID, id string, in *models.InventoryItemInput) (*models.InventoryItem, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := validateInventory(in, false); err != nil {
		return nil, err
	}
	return s.repomanager.Inventory(s.db).Update(ctx, userID, id, in)
}

func (s *InventoryService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Inventory(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting inventory item: %w", err)
	}
	return nil
}
