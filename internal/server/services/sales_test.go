package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture(t *testing.T) (*memory.Store, *models.InventoryItem) {
	t.Helper()
	store := memory.NewStore()
	rm := memory.NewManager(store)
	item, err := NewInventoryService(nil, rm).Create(context.Background(), userA, sugarInput())
	require.NoError(t, err)
	return store, item
}

func TestSaleService_CreateDecrementsStock(t *testing.T) {
	store, item := newSaleFixture(t)
	db, mock := newMockDB(t)
	svc := NewSaleService(db, memory.NewManager(store))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectCommit()

	sale, err := svc.Create(context.Background(), userA, &models.SaleInput{
		ProductName: ptr("Sugar"),
		Quantity:    ptr(3),
		Amount:      dec("4.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, store.Items[item.ID].CurrentStock)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), sale.Date)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleService_InsufficientStockRollsBack(t *testing.T) {
	store, item := newSaleFixture(t)
	db, mock := newMockDB(t)
	svc := NewSaleService(db, memory.NewManager(store))

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), userA, &models.SaleInput{
		ProductName: ptr("Sugar"),
		Quantity:    ptr(11),
		Amount:      dec("16.50"),
	})
	assert.ErrorIs(t, err, common.ErrorInsufficientStock)
	assert.Equal(t, 10, store.Items[item.ID].CurrentStock)
	assert.Empty(t, store.Sales)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleService_UntrackedProduct(t *testing.T) {
	store := memory.NewStore()
	db, mock := newMockDB(t)
	svc := NewSaleService(db, memory.NewManager(store))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), userA, &models.SaleInput{
		ProductName: ptr("Airtime"),
		Quantity:    ptr(1),
		Amount:      dec("100"),
	})
	require.NoError(t, err)
	assert.Len(t, store.Sales, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleService_OtherUsersStockUntouched(t *testing.T) {
	store, item := newSaleFixture(t)
	db, mock := newMockDB(t)
	svc := NewSaleService(db, memory.NewManager(store))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), userB, &models.SaleInput{
		ProductName: ptr("Sugar"),
		Quantity:    ptr(50),
		Amount:      dec("75"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, store.Items[item.ID].CurrentStock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleService_Validation(t *testing.T) {
	svc := NewSaleService(nil, memory.NewManager(memory.NewStore()))

	_, err := svc.Create(context.Background(), userA, &models.SaleInput{
		ProductName: ptr("Sugar"),
		Quantity:    ptr(0),
		Amount:      dec("1"),
	})
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity must be at least 1", ve.Message)

	_, err = svc.Update(context.Background(), userA, "x", &models.SaleInput{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSaleService_Summary(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store.Sales = []*models.Sale{
		{ID: "1", UserID: userA, ProductName: "Sugar", Quantity: 2, Amount: *dec("3"), Date: day},
		{ID: "2", UserID: userA, ProductName: "Flour", Quantity: 1, Amount: *dec("10"), Date: day},
		{ID: "3", UserID: userA, ProductName: "Sugar", Quantity: 4, Amount: *dec("6"), Date: day},
		{ID: "4", UserID: userB, ProductName: "Sugar", Quantity: 9, Amount: *dec("99"), Date: day},
	}
	svc := NewSaleService(nil, memory.NewManager(store))

	sum, err := svc.Summary(context.Background(), userA)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 7, sum.TotalQuantity)
	assert.Equal(t, "19", sum.TotalRevenue.String())
	require.Len(t, sum.ByProduct, 2)
	assert.Equal(t, "Flour", sum.ByProduct[0].ProductName)
	assert.Equal(t, 6, sum.ByProduct[1].Quantity)
}
