package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/shopspring/decimal"
)

func itemRows(items []*models.InventoryItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			strconv.Itoa(it.CurrentStock),
			strconv.Itoa(it.ReorderPoint),
			money(it.SellingPrice),
			it.Category,
		})
	}
	return rows
}

var itemHeader = []string{"NAME", "STOCK", "REORDER", "PRICE", "CATEGORY"}

func (a *App) Inventory(ctx context.Context) error {
	items, err := a.client.Inventory(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No inventory items yet")
		return nil
	}
	table(a.out, itemHeader, itemRows(items))
	return nil
}

func (a *App) LowStock(ctx context.Context) error {
	items, err := a.client.LowStock(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing is low on stock")
		return nil
	}
	table(a.out, itemHeader, itemRows(items))
	return nil
}

// AddItem prompts for the fields of a new inventory item. Blank optional
// answers are left for the server to default.
func (a *App) AddItem(ctx context.Context) error {
	in := &models.InventoryItemInput{}

	name, err := getSimpleText(a.reader, "Item name", a.out)
	if err != nil {
		return err
	}
	in.Name = &name

	if in.CurrentStock, err = a.askInt("Current stock"); err != nil {
		return err
	}
	if in.ReorderPoint, err = a.askInt("Reorder point (blank for default)"); err != nil {
		return err
	}
	if in.CostPrice, err = a.askDecimal("Cost price"); err != nil {
		return err
	}
	if in.SellingPrice, err = a.askDecimal("Selling price"); err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return err
	}
	if category != "" {
		in.Category = &category
	}

	item, err := a.client.CreateItem(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (id %s)\n", item.Name, item.ID)
	return nil
}

func (a *App) askInt(prompt string) (*int, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	return &n, nil
}

func (a *App) askDecimal(prompt string) (*decimal.Decimal, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil, fmt.Errorf("%q is not an amount", s)
	}
	return &d, nil
}

func (a *App) Suppliers(ctx context.Context) error {
	list, err := a.client.Suppliers(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No suppliers yet")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.Name, s.ContactPerson, s.Phone, strings.Join(s.ProductsSupplied, ", ")})
	}
	table(a.out, []string{"NAME", "CONTACT", "PHONE", "PRODUCTS"}, rows)
	return nil
}

func (a *App) Sales(ctx context.Context) error {
	list, err := a.client.Sales(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No sales recorded")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.Date.Format("2006-01-02"), s.ProductName, strconv.Itoa(s.Quantity), money(s.Amount), s.CustomerName})
	}
	table(a.out, []string{"DATE", "PRODUCT", "QTY", "AMOUNT", "CUSTOMER"}, rows)
	return nil
}
