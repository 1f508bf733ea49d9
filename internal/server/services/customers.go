package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CustomerService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
}

func NewCustomerService(db *sqlx.DB, m repomanager.RepositoryManager) *CustomerService {
	return &CustomerService{db: db, repomanager: m}
}

func validateCustomer(in *models.CustomerInput, create bool) error {
	var v validator
	v.name("name", in.Name, create)
	v.text(in.Phone)
	v.text(in.Email)
	v.money("totalPurchases", in.TotalPurchases, false, false)
	return v.err
}

func (s *CustomerService) Create(ctx context.Context, userID string, in *models.CustomerInput) (*models.Customer, error) {
	if err := validateCustomer(in, true); err != nil {
		return nil, err
	}
	total := decimal.Zero
	if in.TotalPurchases != nil {
		total = *in.TotalPurchases
	}
	c := &models.Customer{
		UserID:           userID,
		Name:             *in.Name,
		Phone:            deref(in.Phone),
		Email:            deref(in.Email),
		Address:          deref(in.Address),
		TotalPurchases:   total,
		LastPurchaseDate: in.LastPurchaseDate.Ptr(),
		Notes:            deref(in.Notes),
	}
	return s.repomanager.Customers(s.db).Create(ctx, c)
}

func (s *CustomerService) List(ctx context.Context, userID string) ([]*models.Customer, error) {
	return s.repomanager.Customers(s.db).List(ctx, userID)
}

func (s *CustomerService) Update(ctx context.Context, userID, id string, in *models.CustomerInput) (*models.Customer, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := validateCustomer(in, false); err != nil {
		return nil, err
	}
	return s.repomanager.Customers(s.db).Update(ctx, userID, id, in)
}

func (s *CustomerService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Customers(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting customer: %w", err)
	}
	return nil
}
