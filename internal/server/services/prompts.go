package services

import (
	"strings"
	"text/template"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/server/gemini"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

var promptFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return numberPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
	},
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
	"join": strings.Join,
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(promptFuncs).Parse(text))
}

const inventoryBlock = `Inventory ({{len .Items}} items):
{{range .Items}}- {{.Name}}: stock {{.CurrentStock}}, reorder point {{.ReorderPoint}}, cost {{money .CostPrice}}, price {{money .SellingPrice}}{{with .Category}}, category {{.}}{{end}}{{with .Supplier}}, supplier {{.}}{{end}}
{{end}}`

const salesBlock = `Recent sales ({{len .Sales}}):
{{range .Sales}}- {{date .Date}}: {{.Quantity}} x {{.ProductName}} for {{money .Amount}}
{{else}}- none recorded
{{end}}`

const expensesBlock = `Recent expenses ({{len .Expenses}}):
{{range .Expenses}}- {{date .Date}}: {{.Category}} {{money .Amount}}{{with .Description}} ({{.}}){{end}}
{{else}}- none recorded
{{end}}`

const customersBlock = `Customers ({{len .Customers}}):
{{range .Customers}}- {{.Name}}: total purchases {{money .TotalPurchases}}{{with .LastPurchaseDate}}, last purchase {{date .}}{{end}}
{{else}}- none recorded
{{end}}`

var (
	inventoryOptimizationPrompt = mustPrompt("inventory-optimization", `You are an inventory management expert advising a small business.
Analyse the inventory and recent sales below and recommend stock levels for each item that needs attention.

`+inventoryBlock+`
`+salesBlock+`
Respond with a JSON object with "recommendations" (itemName, currentStock, recommendedStock, action, reason, priority) and a short "summary".`)

	orderAutomationPrompt = mustPrompt("order-automation", `You are a purchasing assistant for a small business.
Using the inventory, suppliers and recent sales below, draft purchase orders for items that are running low or selling fast.

`+inventoryBlock+`
Suppliers ({{len .Suppliers}}):
{{range .Suppliers}}- {{.Name}}{{with .ProductsSupplied}}: supplies {{join . ", "}}{{end}}{{with .PaymentTerms}}; terms {{.}}{{end}}
{{else}}- none recorded
{{end}}
`+salesBlock+`
Respond with a JSON object with "orders" (itemName, supplier, quantity, estimatedCost, urgency, reason) and a short "summary".`)

	financeInsightsPrompt = mustPrompt("finance-insights", `You are a financial advisor for a small business.
Total revenue: {{money .Revenue}}. Total expenses: {{money .Spend}}. Net: {{money .Net}}.

`+salesBlock+`
`+expensesBlock+`
Respond with a JSON object with "insights" (title, description, impact), "cashFlowTips" (short strings) and a short "summary".`)

	marketingCampaignsPrompt = mustPrompt("marketing-campaigns", `You are a marketing strategist for a small business.
Goal: {{with .Goal}}{{.}}{{else}}grow sales{{end}}.
Target audience: {{with .Audience}}{{.}}{{else}}existing and new customers{{end}}.
Budget: {{if .Budget}}{{money .Budget}}{{else}}flexible{{end}}.

`+inventoryBlock+`
`+customersBlock+`
Propose up to three campaigns. Respond with a JSON object with "campaigns" (name, channel, targetAudience, message, budget, expectedOutcome, duration).`)

	businessAnalyticsPrompt = mustPrompt("business-analytics", `You are a business analyst for a small business.
Derive key performance indicators and recommendations from the data below.

`+inventoryBlock+`
`+salesBlock+`
`+customersBlock+`
`+expensesBlock+`
Respond with a JSON object with "kpis" (name, value, trend, insight), "recommendations" (short strings) and a short "summary".`)

	pitchAnalysisPrompt = mustPrompt("pitch-analysis", `You are a sales coach. Evaluate the following sales pitch{{with .Title}} titled "{{.}}"{{end}}.

Transcript:
"""
{{.Transcript}}
"""

Score clarity and persuasiveness from 1 to 10 and give an overall score from 1 to 10.
Respond with a JSON object with "overallScore", "clarity", "persuasiveness", "strengths", "improvements" and a short "summary".`)
)

var (
	priority = gemini.Enum("urgency of acting on the recommendation", "high", "medium", "low")

	inventoryOptimizationSchema = gemini.Object(map[string]*gemini.Schema{
		"recommendations": gemini.Array(gemini.Object(map[string]*gemini.Schema{
			"itemName":         gemini.String("inventory item name"),
			"currentStock":     gemini.Integer("units on hand"),
			"recommendedStock": gemini.Integer("suggested units on hand"),
			"action":           gemini.Enum("what to do", "restock", "reduce", "maintain"),
			"reason":           gemini.String("why"),
			"priority":         priority,
		})),
		"summary": gemini.String("overall assessment"),
	})

	orderAutomationSchema = gemini.Object(map[string]*gemini.Schema{
		"orders": gemini.Array(gemini.Object(map[string]*gemini.Schema{
			"itemName":      gemini.String("inventory item name"),
			"supplier":      gemini.String("supplier to order from"),
			"quantity":      gemini.Integer("units to order"),
			"estimatedCost": gemini.Number("quantity times cost price"),
			"urgency":       gemini.Enum("how soon to order", "urgent", "soon", "routine"),
			"reason":        gemini.String("why"),
		})),
		"summary": gemini.String("overall assessment"),
	})

	financeInsightsSchema = gemini.Object(map[string]*gemini.Schema{
		"insights": gemini.Array(gemini.Object(map[string]*gemini.Schema{
			"title":       gemini.String("short headline"),
			"description": gemini.String("explanation"),
			"impact":      gemini.Enum("effect on the business", "positive", "negative", "neutral"),
		})),
		"cashFlowTips": gemini.Array(gemini.String("actionable tip")),
		"summary":      gemini.String("overall assessment"),
	})

	marketingCampaignsSchema = gemini.Object(map[string]*gemini.Schema{
		"campaigns": gemini.Array(gemini.Object(map[string]*gemini.Schema{
			"name":            gemini.String("campaign name"),
			"channel":         gemini.String("e.g. SMS, WhatsApp, social media, in-store"),
			"targetAudience":  gemini.String("who it addresses"),
			"message":         gemini.String("core message or copy"),
			"budget":          gemini.Number("suggested spend"),
			"expectedOutcome": gemini.String("expected result"),
			"duration":        gemini.String("how long to run it"),
		})),
	})

	businessAnalyticsSchema = gemini.Object(map[string]*gemini.Schema{
		"kpis": gemini.Array(gemini.Object(map[string]*gemini.Schema{
			"name":    gemini.String("indicator name"),
			"value":   gemini.String("formatted value"),
			"trend":   gemini.Enum("direction", "up", "down", "flat"),
			"insight": gemini.String("what it means"),
		})),
		"recommendations": gemini.Array(gemini.String("recommendation")),
		"summary":         gemini.String("overall assessment"),
	})

	pitchAnalysisSchema = gemini.Object(map[string]*gemini.Schema{
		"overallScore":   gemini.Integer("1 to 10"),
		"clarity":        gemini.Integer("1 to 10"),
		"persuasiveness": gemini.Integer("1 to 10"),
		"strengths":      gemini.Array(gemini.String("strength")),
		"improvements":   gemini.Array(gemini.String("suggested improvement")),
		"summary":        gemini.String("overall feedback"),
	})
)
