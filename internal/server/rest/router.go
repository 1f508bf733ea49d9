package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/metrics"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the API is assembled from. Metrics and DB may
// be nil in tests.
type Deps struct {
	Users     *services.UserService
	Inventory *services.InventoryService
	Suppliers *services.SupplierService
	Customers *services.CustomerService
	Sales     *services.SaleService
	Expenses  *services.ExpenseService
	Insights  *services.InsightService
	Pitches   *services.PitchService
	Reports   *services.ReportService

	DB      Pinger
	Metrics *metrics.Metrics
	Logger  logging.Logger

	JWTSecret      []byte
	CORSOrigins    []string
	MaxUploadBytes int64
}

type Handler struct {
	d       *Deps
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d *Deps) *gin.Engine {
	h := &Handler{d: d, logger: d.Logger.With("module", "rest"), metrics: d.Metrics}

	r := gin.New()
	r.Use(gin.Recovery(), h.observe(), corsMiddleware(d.CORSOrigins))

	r.GET("/healthz", h.healthz)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	protected := api.Group("")
	protected.Use(authGate(d.JWTSecret, h.logger))

	protected.GET("/auth/me", h.me)

	inv := protected.Group("/inventory")
	inv.GET("/low-stock", h.lowStock)
	inv.GET("/optimization", h.inventoryOptimization)
	inv.GET("/order-automation", h.orderAutomation)
	mountCRUD[models.InventoryItem, models.InventoryItemInput](inv, h, resInventory, d.Inventory)

	mountCRUD[models.Supplier, models.SupplierInput](protected.Group("/suppliers"), h, resSupplier, d.Suppliers)
	mountCRUD[models.Customer, models.CustomerInput](protected.Group("/customers"), h, resCustomer, d.Customers)

	sales := protected.Group("/sales")
	sales.GET("/summary", h.salesSummary)
	mountCRUD[models.Sale, models.SaleInput](sales, h, resSale, d.Sales)

	expenses := protected.Group("/expenses")
	expenses.GET("/summary", h.expensesSummary)
	mountCRUD[models.Expense, models.ExpenseInput](expenses, h, resExpense, d.Expenses)

	protected.GET("/finance/insights", h.financeInsights)
	protected.POST("/marketing/campaigns", h.marketingCampaigns)
	protected.GET("/analytics/business", h.businessAnalytics)

	protected.POST("/analyze-pitch", h.analyzePitch)
	protected.GET("/pitches", h.listPitches)
	protected.DELETE("/pitches/:id", h.deletePitch)

	protected.GET("/reports/:kind", h.report)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
