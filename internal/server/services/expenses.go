package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

type ExpenseService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewExpenseService(db *sqlx.DB, m repomanager.RepositoryManager) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m, now: time.Now}
}

func validateExpense(in *models.ExpenseInput, create bool) error {
	var v validator
	v.money("amount", in.Amount, create, true)
	v.name("category", in.Category, create)
	v.text(in.Description)
	v.text(in.PaymentMethod)
	return v.err
}

func (s *ExpenseService) Create(ctx context.Context, userID string, in *models.ExpenseInput) (*models.Expense, error) {
	if err := validateExpense(in, true); err != nil {
		return nil, err
	}
	e := &models.Expense{
		UserID:        userID,
		Amount:        *in.Amount,
		Category:      *in.Category,
		Description:   deref(in.Description),
		PaymentMethod: deref(in.PaymentMethod),
		Date:          dateOr(in.Date, s.now().UTC()),
		Notes:         deref(in.Notes),
	}
	out, err := s.repomanager.Expenses(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error recording expense: %w", err)
	}
	return out, nil
}

func (s *ExpenseService) List(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.repomanager.Expenses(s.db).List(ctx, userID, 0)
}

func (s *ExpenseService) Update(ctx context.Context, userID, id string, in *models.ExpenseInput) (*models.Expense, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	if err := validateExpense(in, false); err != nil {
		return nil, err
	}
	return s.repomanager.Expenses(s.db).Update(ctx, userID, id, in)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Expenses(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	return nil
}

// Summary totals the user's expenses overall and per category.
func (s *ExpenseService) Summary(ctx context.Context, userID string) (*ExpenseSummary, error) {
	list, err := s.repomanager.Expenses(s.db).List(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	return SummarizeExpenses(list), nil
}
