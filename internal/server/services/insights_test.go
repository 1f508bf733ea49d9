package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/server/metrics"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObserver struct {
	mu       sync.Mutex
	outcomes map[string][]string
}

func (o *fakeObserver) ObserveAI(feature, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = map[string][]string{}
	}
	o.outcomes[feature] = append(o.outcomes[feature], outcome)
}

func newInsightFixture() (*InsightService, *memory.Store, *fakeGenerator, *fakeObserver) {
	store := memory.NewStore()
	gen := &fakeGenerator{reply: json.RawMessage(`{"summary":"ok"}`)}
	obs := &fakeObserver{}
	return NewInsightService(nil, memory.NewManager(store), gen, obs), store, gen, obs
}

func seedShop(store *memory.Store) {
	store.Items["i1"] = &models.InventoryItem{ID: "i1", UserID: userA, Name: "Sugar", CurrentStock: 3,
		ReorderPoint: 5, CostPrice: *dec("1.2"), SellingPrice: *dec("1.5"), Supplier: "Mama Mboga"}
	store.Suppliers["s1"] = &models.Supplier{ID: "s1", UserID: userA, Name: "Mama Mboga",
		ProductsSupplied: models.StringList{"Sugar", "Flour"}}
	store.Customers["c1"] = &models.Customer{ID: "c1", UserID: userA, Name: "Wanjiku", TotalPurchases: *dec("1200")}
	store.Sales = append(store.Sales, &models.Sale{ID: "x1", UserID: userA, ProductName: "Sugar",
		Quantity: 2, Amount: *dec("3"), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	store.Expenses = append(store.Expenses, &models.Expense{ID: "e1", UserID: userA, Category: "Rent",
		Amount: *dec("1000"), Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
}

func TestInsightService_EmptyDataSkipsGenerator(t *testing.T) {
	svc, _, gen, obs := newInsightFixture()
	ctx := context.Background()

	calls := map[string]func() (json.RawMessage, error){
		"inventory": func() (json.RawMessage, error) { return svc.InventoryOptimization(ctx, userA) },
		"orders":    func() (json.RawMessage, error) { return svc.OrderAutomation(ctx, userA) },
		"finance":   func() (json.RawMessage, error) { return svc.FinanceInsights(ctx, userA) },
		"marketing": func() (json.RawMessage, error) { return svc.MarketingCampaigns(ctx, userA, CampaignRequest{}) },
		"analytics": func() (json.RawMessage, error) { return svc.BusinessAnalytics(ctx, userA) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			out, err := call()
			require.NoError(t, err)
			var body map[string]any
			require.NoError(t, json.Unmarshal(out, &body))
			assert.NotEmpty(t, body["message"])
		})
	}
	assert.Equal(t, 0, gen.Calls())
	assert.Equal(t, []string{metrics.OutcomeSkipped}, obs.outcomes[FeatureFinanceInsights.Name])
}

func TestInsightService_OnlyOwnDataIsSent(t *testing.T) {
	svc, store, gen, _ := newInsightFixture()
	seedShop(store)
	ctx := context.Background()

	// user B has nothing, so nothing of A's may leak into a prompt
	_, err := svc.OrderAutomation(ctx, userB)
	require.NoError(t, err)
	assert.Equal(t, 0, gen.Calls())

	out, err := svc.OrderAutomation(ctx, userA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"ok"}`, string(out))
	require.Equal(t, 1, gen.Calls())
	assert.Contains(t, gen.prompts[0], "Sugar: stock 3, reorder point 5")
	assert.Contains(t, gen.prompts[0], "Mama Mboga: supplies Sugar, Flour")
	assert.Same(t, orderAutomationSchema, gen.schemas[0])
}

func TestInsightService_FinancePromptTotals(t *testing.T) {
	svc, store, gen, obs := newInsightFixture()
	seedShop(store)

	_, err := svc.FinanceInsights(context.Background(), userA)
	require.NoError(t, err)
	require.Equal(t, 1, gen.Calls())
	assert.Contains(t, gen.prompts[0], "Total revenue: 3.00. Total expenses: 1,000.00. Net: -997.00.")
	assert.Equal(t, []string{metrics.OutcomeSuccess}, obs.outcomes[FeatureFinanceInsights.Name])
}

func TestInsightService_MarketingRequest(t *testing.T) {
	svc, store, gen, _ := newInsightFixture()
	seedShop(store)

	_, err := svc.MarketingCampaigns(context.Background(), userA, CampaignRequest{
		Goal:   " clear old stock ",
		Budget: dec("500"),
	})
	require.NoError(t, err)
	p := gen.prompts[0]
	assert.Contains(t, p, "Goal: clear old stock.")
	assert.Contains(t, p, "Target audience: existing and new customers.")
	assert.Contains(t, p, "Budget: 500.00.")
	assert.Contains(t, p, "Wanjiku: total purchases 1,200.00")
}

func TestInsightService_GenerationFailure(t *testing.T) {
	svc, store, gen, obs := newInsightFixture()
	seedShop(store)
	upstream := errors.New("quota exceeded")
	gen.err = upstream

	_, err := svc.BusinessAnalytics(context.Background(), userA)
	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, FeatureBusinessAnalytics, ge.Feature)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, []string{metrics.OutcomeError}, obs.outcomes[FeatureBusinessAnalytics.Name])
}
