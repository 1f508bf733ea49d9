package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

type SupplierService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
}

func NewSupplierService(db *sqlx.DB, m repomanager.RepositoryManager) *SupplierService {
	return &SupplierService{db: db, repomanager: m}
}

func validateSupplier(in *models.SupplierInput, create bool) error {
	var v validator
	v.name("name", in.Name, create)
	v.text(in.ContactPerson)
	v.text(in.Phone)
	v.text(in.Email)
	if in.ProductsSupplied != nil {
		products := make([]string, 0, len(*in.ProductsSupplied))
		for _, p := range *in.ProductsSupplied {
			if p = NormalizeName(p); p != "" {
				products = append(products, p)
			}
		}
		*in.ProductsSupplied = products
	}
	return v.err
}

func (s *SupplierService) Create(ctx context.Context, userID string, in *models.SupplierInput) (*models.Supplier, error) {
	if err := validateSupplier(in, true); err != nil {
		return nil, err
	}
	sup := &models.Supplier{
		UserID:           userID,
		Name:             *in.Name,
		ContactPerson:    deref(in.ContactPerson),
		Phone:            deref(in.Phone),
		Email:            deref(in.Email),
		Address:          deref(in.Address),
		ProductsSupplied: models.StringList(deref(in.ProductsSupplied)),
		PaymentTerms:     deref(in.PaymentTerms),
		Notes:            deref(in.Notes),
	}
	return s.repomanager.Suppliers(s.db).Create(ctx, sup)
}

func (s *SupplierService) List(ctx context.Context, userID string) ([]*models.Supplier, error) {
	return s.repomanager.Suppliers(s.db).List(ctx, userID)
}

func (s *SupplierService) Update(ctx context.Context, userID, id string, in *models.SupplierInput) (*models.Supplier, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := validateSupplier(in, false); err != nil {
		return nil, err
	}
	return s.repomanager.Suppliers(s.db).Update(ctx, userID, id, in)
}

func (s *SupplierService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Suppliers(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting supplier: %w", err)
	}
	return nil
}
