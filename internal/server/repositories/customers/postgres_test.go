package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "user_id", "name", "phone", "email", "address", "total_purchases", "last_purchase_date",
	"notes", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func row(id, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(cols).AddRow(id, "u-1", name, "555", "", "", "1250.50", now, "", now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+customers`).
		WithArgs(sqlmock.AnyArg(), "u-1", "Mama Njeri", "555", "", "", sqlmock.AnyArg(), nil, "").
		WillReturnRows(row("c-1", "Mama Njeri"))

	got, err := repo.Create(context.Background(), &models.Customer{UserID: "u-1", Name: "Mama Njeri", Phone: "555"})
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(decimal.RequireFromString("1250.5")))
	assert.NotNil(t, got.LastPurchaseDate)
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT\s+INTO\s+customers`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Customer{UserID: "u-1", Name: "X"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+customers\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+name`).
		WithArgs("u-1").
		WillReturnRows(row("c-1", "A"))
	mock.ExpectQuery(`FROM\s+customers`).WillReturnError(errors.New("boom"))

	got, err := repo.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = repo.List(context.Background(), "u-1")
	assert.ErrorContains(t, err, "failed to select customers")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	name := "Mama N."

	mock.ExpectQuery(`(?s)^UPDATE\s+customers\s+SET\s+name\s*=\s*COALESCE\(\$3,\s*name\)`).
		WithArgs("c-1", "u-1", "Mama N.", nil, nil, nil, nil, nil, nil).
		WillReturnRows(row("c-1", "Mama N."))

	got, err := repo.Update(context.Background(), "u-1", "c-1", &models.CustomerInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mama N.", got.Name)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+customers`).WithArgs("c-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "u-1", "c-1"))
}
