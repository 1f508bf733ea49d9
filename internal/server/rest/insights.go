package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/pitchpoa/internal/server/services"
	"github.com/gin-gonic/gin"
)

// relay writes a generator answer verbatim.
func (h *Handler) relay(c *gin.Context, res resource, out json.RawMessage, err error) {
	if err != nil {
		h.fail(c, res, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (h *Handler) inventoryOptimization(c *gin.Context) {
	out, err := h.d.Insights.InventoryOptimization(c.Request.Context(), userID(c))
	h.relay(c, resInventory, out, err)
}

func (h *Handler) orderAutomation(c *gin.Context) {
	out, err := h.d.Insights.OrderAutomation(c.Request.Context(), userID(c))
	h.relay(c, resInventory, out, err)
}

func (h *Handler) financeInsights(c *gin.Context) {
	out, err := h.d.Insights.FinanceInsights(c.Request.Context(), userID(c))
	h.relay(c, resSale, out, err)
}

func (h *Handler) businessAnalytics(c *gin.Context) {
	out, err := h.d.Insights.BusinessAnalytics(c.Request.Context(), userID(c))
	h.relay(c, resSale, out, err)
}

// marketingCampaigns accepts an empty body; every request field is optional.
func (h *Handler) marketingCampaigns(c *gin.Context) {
	var req services.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		message(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	out, err := h.d.Insights.MarketingCampaigns(c.Request.Context(), userID(c), req)
	h.relay(c, resInventory, out, err)
}
