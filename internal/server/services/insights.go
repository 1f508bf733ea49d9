package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/dmitrijs2005/pitchpoa/internal/server/gemini"
	"github.com/dmitrijs2005/pitchpoa/internal/server/metrics"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// recentLimit bounds how many sales or expenses are sent to the model.
const recentLimit = 100

// Generator produces a JSON object from a prompt and a response schema.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *gemini.Schema) (json.RawMessage, error)
}

// AIObserver records the outcome of every AI feature request.
type AIObserver interface {
	ObserveAI(feature, outcome string)
}

// Feature identifies an AI-backed endpoint in metrics and error messages.
type Feature struct {
	Name  string
	Label string
}

var (
	FeatureInventoryOptimization = Feature{"inventory_optimization", "inventory optimization"}
	FeatureOrderAutomation       = Feature{"order_automation", "order recommendations"}
	FeatureFinanceInsights       = Feature{"finance_insights", "financial insights"}
	FeatureMarketingCampaigns    = Feature{"marketing_campaigns", "marketing campaigns"}
	FeatureBusinessAnalytics     = Feature{"business_analytics", "business analytics"}
	FeaturePitchAnalysis         = Feature{"pitch_analysis", "pitch analysis"}
)

// GenerationError wraps any failure to obtain a model answer.
type GenerationError struct {
	Feature Feature
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Feature.Name, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// CampaignRequest steers marketing campaign generation.
type CampaignRequest struct {
	Goal     string           `json:"goal"`
	Audience string           `json:"audience"`
	Budget   *decimal.Decimal `json:"budget"`
}

// InsightService assembles prompts from a user's records and relays them to
// the generator. When the primary data set is empty it answers with an empty
// result without calling the generator.
type InsightService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	generator   Generator
	observer    AIObserver
}

func NewInsightService(db *sqlx.DB, m repomanager.RepositoryManager, g Generator, o AIObserver) *InsightService {
	return &InsightService{db: db, repomanager: m, generator: g, observer: o}
}

func (s *InsightService) InventoryOptimization(ctx context.Context, userID string) (json.RawMessage, error) {
	f := FeatureInventoryOptimization
	items, err := s.repomanager.Inventory(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.skip(f, map[string]any{
			"message":         "No inventory items found. Add items to get optimization recommendations.",
			"recommendations": []any{},
			"summary":         "",
		})
	}
	recent, err := s.repomanager.Sales(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	data := struct {
		Items []*models.InventoryItem
		Sales []*models.Sale
	}{items, recent}
	return s.generate(ctx, f, inventoryOptimizationPrompt, data, inventoryOptimizationSchema)
}

func (s *InsightService) OrderAutomation(ctx context.Context, userID string) (json.RawMessage, error) {
	f := FeatureOrderAutomation
	items, err := s.repomanager.Inventory(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.skip(f, map[string]any{
			"message": "No inventory items found. Add items to get order recommendations.",
			"orders":  []any{},
			"summary": "",
		})
	}
	sups, err := s.repomanager.Suppliers(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repomanager.Sales(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	data := struct {
		Items     []*models.InventoryItem
		Suppliers []*models.Supplier
		Sales     []*models.Sale
	}{items, sups, recent}
	return s.generate(ctx, f, orderAutomationPrompt, data, orderAutomationSchema)
}

func (s *InsightService) FinanceInsights(ctx context.Context, userID string) (json.RawMessage, error) {
	f := FeatureFinanceInsights
	recentSales, err := s.repomanager.Sales(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := s.repomanager.Expenses(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if len(recentSales) == 0 && len(recentExpenses) == 0 {
		return s.skip(f, map[string]any{
			"message":      "No sales or expenses found. Record transactions to get financial insights.",
			"insights":     []any{},
			"cashFlowTips": []any{},
			"summary":      "",
		})
	}
	revenue := SummarizeSales(recentSales).TotalRevenue
	spend := SummarizeExpenses(recentExpenses).Total
	data := struct {
		Sales               []*models.Sale
		Expenses            []*models.Expense
		Revenue, Spend, Net decimal.Decimal
	}{recentSales, recentExpenses, revenue, spend, revenue.Sub(spend)}
	return s.generate(ctx, f, financeInsightsPrompt, data, financeInsightsSchema)
}

func (s *InsightService) MarketingCampaigns(ctx context.Context, userID string, req CampaignRequest) (json.RawMessage, error) {
	f := FeatureMarketingCampaigns
	items, err := s.repomanager.Inventory(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.skip(f, map[string]any{
			"message":   "No inventory items found. Add products to generate marketing campaigns.",
			"campaigns": []any{},
		})
	}
	custs, err := s.repomanager.Customers(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	data := struct {
		Goal, Audience string
		Budget         *decimal.Decimal
		Items          []*models.InventoryItem
		Customers      []*models.Customer
	}{strings.TrimSpace(req.Goal), strings.TrimSpace(req.Audience), req.Budget, items, custs}
	return s.generate(ctx, f, marketingCampaignsPrompt, data, marketingCampaignsSchema)
}

func (s *InsightService) BusinessAnalytics(ctx context.Context, userID string) (json.RawMessage, error) {
	f := FeatureBusinessAnalytics
	recent, err := s.repomanager.Sales(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return s.skip(f, map[string]any{
			"message":         "No sales found. Record sales to get business analytics.",
			"kpis":            []any{},
			"recommendations": []any{},
			"summary":         "",
		})
	}
	items, err := s.repomanager.Inventory(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	custs, err := s.repomanager.Customers(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	exps, err := s.repomanager.Expenses(s.db).List(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	data := struct {
		Items     []*models.InventoryItem
		Sales     []*models.Sale
		Customers []*models.Customer
		Expenses  []*models.Expense
	}{items, recent, custs, exps}
	return s.generate(ctx, f, businessAnalyticsPrompt, data, businessAnalyticsSchema)
}

// --- helpers below ---

func (s *InsightService) skip(f Feature, body map[string]any) (json.RawMessage, error) {
	s.observe(f, metrics.OutcomeSkipped)
	return json.Marshal(body)
}

func (s *InsightService) generate(ctx context.Context, f Feature, tmpl *template.Template, data any, schema *gemini.Schema) (json.RawMessage, error) {
	return generate(ctx, s.generator, s.observer, f, tmpl, data, schema)
}

func (s *InsightService) observe(f Feature, outcome string) {
	if s.observer != nil {
		s.observer.ObserveAI(f.Name, outcome)
	}
}

// generate renders the prompt, calls g and records the outcome.
func generate(ctx context.Context, g Generator, o AIObserver, f Feature, tmpl *template.Template, data any, schema *gemini.Schema) (json.RawMessage, error) {
	var prompt strings.Builder
	if err := tmpl.Execute(&prompt, data); err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", f.Name, err)
	}

	out, err := g.GenerateJSON(ctx, prompt.String(), schema)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	if o != nil {
		o.ObserveAI(f.Name, outcome)
	}
	if err != nil {
		return nil, &GenerationError{Feature: f, Err: err}
	}
	return out, nil
}
