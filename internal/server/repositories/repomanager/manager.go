package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pitchpoa/internal/dbx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/customers"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/inventory"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/pitches"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/sales"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/suppliers"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can choose the scope of each unit of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Inventory(db dbx.DBTX) inventory.Repository
	Suppliers(db dbx.DBTX) suppliers.Repository
	Customers(db dbx.DBTX) customers.Repository
	Sales(db dbx.DBTX) sales.Repository
	Expenses(db dbx.DBTX) expenses.Repository
	Pitches(db dbx.DBTX) pitches.Repository
}
