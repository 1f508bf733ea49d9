package services

import (
	"sort"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/shopspring/decimal"
)

type ProductTotal struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type SalesSummary struct {
	Count         int             `json:"count"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	ByProduct     []ProductTotal  `json:"byProduct"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

type ExpenseSummary struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

// SummarizeSales groups by product name, largest revenue first.
func SummarizeSales(list []*models.Sale) *SalesSummary {
	out := &SalesSummary{TotalRevenue: decimal.Zero, ByProduct: []ProductTotal{}}
	idx := map[string]int{}
	for _, s := range list {
		out.Count++
		out.TotalQuantity += s.Quantity
		out.TotalRevenue = out.TotalRevenue.Add(s.Amount)

		i, ok := idx[s.ProductName]
		if !ok {
			i = len(out.ByProduct)
			idx[s.ProductName] = i
			out.ByProduct = append(out.ByProduct, ProductTotal{ProductName: s.ProductName, Revenue: decimal.Zero})
		}
		out.ByProduct[i].Quantity += s.Quantity
		out.ByProduct[i].Revenue = out.ByProduct[i].Revenue.Add(s.Amount)
	}
	sort.SliceStable(out.ByProduct, func(i, j int) bool {
		return out.ByProduct[i].Revenue.GreaterThan(out.ByProduct[j].Revenue)
	})
	return out
}

// SummarizeExpenses groups by category, largest total first.
func SummarizeExpenses(list []*models.Expense) *ExpenseSummary {
	out := &ExpenseSummary{Total: decimal.Zero, ByCategory: []CategoryTotal{}}
	idx := map[string]int{}
	for _, e := range list {
		out.Count++
		out.Total = out.Total.Add(e.Amount)

		i, ok := idx[e.Category]
		if !ok {
			i = len(out.ByCategory)
			idx[e.Category] = i
			out.ByCategory = append(out.ByCategory, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		out.ByCategory[i].Count++
		out.ByCategory[i].Total = out.ByCategory[i].Total.Add(e.Amount)
	}
	sort.SliceStable(out.ByCategory, func(i, j int) bool {
		return out.ByCategory[i].Total.GreaterThan(out.ByCategory[j].Total)
	})
	return out
}
