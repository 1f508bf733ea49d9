// Package memory is an in-process RepositoryManager backed by maps. It keeps
// the ownership and per-user uniqueness rules of the PostgreSQL repositories
// and is used by service and transport tests.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/dbx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/customers"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/inventory"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/pitches"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/sales"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/suppliers"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/users"
	"github.com/google/uuid"
)

// Store holds every record. Fields are exported so tests can seed and
// inspect state; hold Mu when doing so from several goroutines.
type Store struct {
	Mu        sync.Mutex
	Users     map[string]*models.User
	Items     map[string]*models.InventoryItem
	Suppliers map[string]*models.Supplier
	Customers map[string]*models.Customer
	Sales     []*models.Sale
	Expenses  []*models.Expense
	Pitches   []*models.PitchAnalysis
	// Err, when set, is returned by every create and list call.
	Err error
}

func NewStore() *Store {
	return &Store{
		Users:     map[string]*models.User{},
		Items:     map[string]*models.InventoryItem{},
		Suppliers: map[string]*models.Supplier{},
		Customers: map[string]*models.Customer{},
	}
}

// Manager implements repomanager.RepositoryManager over a Store. The DBTX
// arguments are ignored.
type Manager struct{ s *Store }

var _ repomanager.RepositoryManager = (*Manager)(nil)

func NewManager(s *Store) *Manager { return &Manager{s: s} }

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *Manager) Users(dbx.DBTX) users.Repository              { return (*usersRepo)(m.s) }
func (m *Manager) Inventory(dbx.DBTX) inventory.Repository      { return (*inventoryRepo)(m.s) }
func (m *Manager) Suppliers(dbx.DBTX) suppliers.Repository      { return (*suppliersRepo)(m.s) }
func (m *Manager) Customers(dbx.DBTX) customers.Repository      { return (*customersRepo)(m.s) }
func (m *Manager) Sales(dbx.DBTX) sales.Repository              { return (*salesRepo)(m.s) }
func (m *Manager) Expenses(dbx.DBTX) expenses.Repository        { return (*expensesRepo)(m.s) }
func (m *Manager) Pitches(dbx.DBTX) pitches.Repository          { return (*pitchesRepo)(m.s) }

func set[T any](dst *T, p *T) {
	if p != nil {
		*dst = *p
	}
}

func setTime(dst **time.Time, p *models.FlexibleTime) {
	if t := p.Ptr(); t != nil {
		*dst = t
	}
}

func byName[T any](m map[string]*T, userID string, name func(*T) string, owner func(*T) string) []*T {
	out := []*T{}
	for _, v := range m {
		if owner(v) == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return name(out[i]) < name(out[j]) })
	return out
}

// --- users ---

type usersRepo Store

func (r *usersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, existing := range r.Users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	r.Users[cp.ID] = &cp
	return &cp, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if u, ok := r.Users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

// --- inventory ---

type inventoryRepo Store

func (r *inventoryRepo) nameTaken(userID, name, except string) bool {
	for _, it := range r.Items {
		if it.ID != except && it.UserID == userID && it.Name == name {
			return true
		}
	}
	return false
}

func (r *inventoryRepo) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.nameTaken(item.UserID, item.Name, "") {
		return nil, common.ErrorAlreadyExists
	}
	cp := *item
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.Items[cp.ID] = &cp
	return &cp, nil
}

func (r *inventoryRepo) List(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return byName(r.Items, userID,
		func(i *models.InventoryItem) string { return i.Name },
		func(i *models.InventoryItem) string { return i.UserID }), nil
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	all, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []*models.InventoryItem{}
	for _, it := range all {
		if it.LowOnStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *inventoryRepo) Get(ctx context.Context, userID, id string) (*models.InventoryItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if it, ok := r.Items[id]; ok && it.UserID == userID {
		return it, nil
	}
	return nil, common.ErrorNotFound
}

func (r *inventoryRepo) GetByNameForUpdate(ctx context.Context, userID, name string) (*models.InventoryItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, it := range r.Items {
		if it.UserID == userID && it.Name == name {
			return it, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *inventoryRepo) Update(ctx context.Context, userID, id string, in *models.InventoryItemInput) (*models.InventoryItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	it, ok := r.Items[id]
	if !ok || it.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if in.Name != nil && r.nameTaken(userID, *in.Name, id) {
		return nil, common.ErrorAlreadyExists
	}
	set(&it.Name, in.Name)
	set(&it.CurrentStock, in.CurrentStock)
	set(&it.ReorderPoint, in.ReorderPoint)
	set(&it.CostPrice, in.CostPrice)
	set(&it.SellingPrice, in.SellingPrice)
	set(&it.Category, in.Category)
	set(&it.Supplier, in.Supplier)
	setTime(&it.LastRestockDate, in.LastRestockDate)
	set(&it.Notes, in.Notes)
	it.UpdatedAt = time.Now().UTC()
	return it, nil
}

func (r *inventoryRepo) AdjustStock(ctx context.Context, userID, id string, delta int) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	it, ok := r.Items[id]
	if !ok || it.UserID != userID {
		return common.ErrorNotFound
	}
	it.CurrentStock += delta
	return nil
}

func (r *inventoryRepo) Delete(ctx context.Context, userID, id string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	it, ok := r.Items[id]
	if !ok || it.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.Items, id)
	return nil
}

// --- suppliers ---

type suppliersRepo Store

func (r *suppliersRepo) nameTaken(userID, name, except string) bool {
	for _, s := range r.Suppliers {
		if s.ID != except && s.UserID == userID && s.Name == name {
			return true
		}
	}
	return false
}

func (r *suppliersRepo) Create(ctx context.Context, s *models.Supplier) (*models.Supplier, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.nameTaken(s.UserID, s.Name, "") {
		return nil, common.ErrorAlreadyExists
	}
	cp := *s
	if cp.ProductsSupplied == nil {
		cp.ProductsSupplied = models.StringList{}
	}
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.Suppliers[cp.ID] = &cp
	return &cp, nil
}

func (r *suppliersRepo) List(ctx context.Context, userID string) ([]*models.Supplier, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return byName(r.Suppliers, userID,
		func(s *models.Supplier) string { return s.Name },
		func(s *models.Supplier) string { return s.UserID }), nil
}

func (r *suppliersRepo) Update(ctx context.Context, userID, id string, in *models.SupplierInput) (*models.Supplier, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	s, ok := r.Suppliers[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if in.Name != nil && r.nameTaken(userID, *in.Name, id) {
		return nil, common.ErrorAlreadyExists
	}
	set(&s.Name, in.Name)
	set(&s.ContactPerson, in.ContactPerson)
	set(&s.Phone, in.Phone)
	set(&s.Email, in.Email)
	set(&s.Address, in.Address)
	if in.ProductsSupplied != nil {
		s.ProductsSupplied = models.StringList(*in.ProductsSupplied)
	}
	set(&s.PaymentTerms, in.PaymentTerms)
	set(&s.Notes, in.Notes)
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

func (r *suppliersRepo) Delete(ctx context.Context, userID, id string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	s, ok := r.Suppliers[id]
	if !ok || s.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.Suppliers, id)
	return nil
}

// --- customers ---

type customersRepo Store

func (r *customersRepo) nameTaken(userID, name, except string) bool {
	for _, c := range r.Customers {
		if c.ID != except && c.UserID == userID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *customersRepo) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.nameTaken(c.UserID, c.Name, "") {
		return nil, common.ErrorAlreadyExists
	}
	cp := *c
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.Customers[cp.ID] = &cp
	return &cp, nil
}

func (r *customersRepo) List(ctx context.Context, userID string) ([]*models.Customer, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return byName(r.Customers, userID,
		func(c *models.Customer) string { return c.Name },
		func(c *models.Customer) string { return c.UserID }), nil
}

func (r *customersRepo) Update(ctx context.Context, userID, id string, in *models.CustomerInput) (*models.Customer, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	c, ok := r.Customers[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if in.Name != nil && r.nameTaken(userID, *in.Name, id) {
		return nil, common.ErrorAlreadyExists
	}
	set(&c.Name, in.Name)
	set(&c.Phone, in.Phone)
	set(&c.Email, in.Email)
	set(&c.Address, in.Address)
	set(&c.TotalPurchases, in.TotalPurchases)
	setTime(&c.LastPurchaseDate, in.LastPurchaseDate)
	set(&c.Notes, in.Notes)
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

func (r *customersRepo) Delete(ctx context.Context, userID, id string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	c, ok := r.Customers[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.Customers, id)
	return nil
}

// --- sales ---

type salesRepo Store

func (r *salesRepo) Create(ctx context.Context, s *models.Sale) (*models.Sale, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cp := *s
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.Sales = append(r.Sales, &cp)
	return &cp, nil
}

func (r *salesRepo) List(ctx context.Context, userID string, limit int) ([]*models.Sale, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*models.Sale{}
	for _, s := range r.Sales {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *salesRepo) Update(ctx context.Context, userID, id string, in *models.SaleInput) (*models.Sale, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, s := range r.Sales {
		if s.ID != id || s.UserID != userID {
			continue
		}
		set(&s.ProductName, in.ProductName)
		set(&s.Quantity, in.Quantity)
		set(&s.Amount, in.Amount)
		if t := in.Date.Ptr(); t != nil {
			s.Date = *t
		}
		set(&s.CustomerName, in.CustomerName)
		set(&s.PaymentMethod, in.PaymentMethod)
		set(&s.Notes, in.Notes)
		s.UpdatedAt = time.Now().UTC()
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (r *salesRepo) Delete(ctx context.Context, userID, id string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for i, s := range r.Sales {
		if s.ID == id && s.UserID == userID {
			r.Sales = append(r.Sales[:i], r.Sales[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- expenses ---

type expensesRepo Store

func (r *expensesRepo) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cp := *e
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	r.Expenses = append(r.Expenses, &cp)
	return &cp, nil
}

func (r *expensesRepo) List(ctx context.Context, userID string, limit int) ([]*models.Expense, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*models.Expense{}
	for _, e := range r.Expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *expensesRepo) Update(ctx context.Context, userID, id string, in *models.ExpenseInput) (*models.Expense, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, e := range r.Expenses {
		if e.ID != id || e.UserID != userID {
			continue
		}
		set(&e.Amount, in.Amount)
		set(&e.Category, in.Category)
		set(&e.Description, in.Description)
		set(&e.PaymentMethod, in.PaymentMethod)
		if t := in.Date.Ptr(); t != nil {
			e.Date = *t
		}
		set(&e.Notes, in.Notes)
		e.UpdatedAt = time.Now().UTC()
		return e, nil
	}
	return nil, common.ErrorNotFound
}

func (r *expensesRepo) Delete(ctx context.Context, userID, id string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for i, e := range r.Expenses {
		if e.ID == id && e.UserID == userID {
			r.Expenses = append(r.Expenses[:i], r.Expenses[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- pitches ---

type pitchesRepo Store

func (r *pitchesRepo) Create(ctx context.Context, p *models.PitchAnalysis) (*models.PitchAnalysis, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cp := *p
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	r.Pitches = append(r.Pitches, &cp)
	return &cp, nil
}

// List walks backwards so the newest insert comes first.
func (r *pitchesRepo) List(ctx context.Context, userID string) ([]*models.PitchAnalysis, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*models.PitchAnalysis{}
	for i := len(r.Pitches) - 1; i >= 0; i-- {
		if r.Pitches[i].UserID == userID {
			out = append(out, r.Pitches[i])
		}
	}
	return out, nil
}

func (r *pitchesRepo) Delete(ctx context.Context, userID, id string) (string, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for i, p := range r.Pitches {
		if p.ID == id && p.UserID == userID {
			r.Pitches = append(r.Pitches[:i], r.Pitches[i+1:]...)
			return p.RecordingKey, nil
		}
	}
	return "", common.ErrorNotFound
}
