package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) lowStock(c *gin.Context) {
	items, err := h.d.Inventory.LowStock(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, resInventory, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) salesSummary(c *gin.Context) {
	sum, err := h.d.Sales.Summary(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, resSale, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) expensesSummary(c *gin.Context) {
	sum, err := h.d.Expenses.Summary(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, resExpense, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
