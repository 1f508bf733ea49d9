package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
	msgBadCredentials = "Invalid credentials"
)

// resource names an entity in client-facing messages.
type resource struct {
	Label     string
	Duplicate string
}

var (
	resUser      = resource{"User", "User already exists"}
	resInventory = resource{"Inventory item", "Inventory item with this name already exists"}
	resSupplier  = resource{"Supplier", "Supplier with this name already exists"}
	resCustomer  = resource{"Customer", "Customer with this name already exists"}
	resSale      = resource{"Sale", ""}
	resExpense   = resource{"Expense", ""}
	resPitch     = resource{"Pitch analysis", ""}
	resReport    = resource{"Report", ""}
)

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// fail maps a service error onto a status code and a safe message. Anything
// unclassified is logged and answered with a generic 500.
func (h *Handler) fail(c *gin.Context, res resource, err error) {
	ctx := c.Request.Context()

	var ve *common.ValidationError
	var ge *services.GenerationError
	switch {
	case errors.As(err, &ve):
		message(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorInsufficientStock):
		message(c, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, common.ErrorAlreadyExists) && res.Duplicate != "":
		message(c, http.StatusBadRequest, res.Duplicate)
	case errors.Is(err, common.ErrorInvalidCredentials):
		message(c, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, common.ErrorUnauthorized):
		message(c, http.StatusUnauthorized, msgNotAuthorized)
	case errors.Is(err, common.ErrorNotFound):
		message(c, http.StatusNotFound, res.Label+" not found")
	case errors.As(err, &ge):
		h.logger.Error(ctx, "generation failed", "feature", ge.Feature.Name, "error", ge.Err)
		message(c, http.StatusInternalServerError, "Failed to generate "+ge.Feature.Label)
	default:
		h.logger.Error(ctx, "request failed", "route", c.FullPath(), "error", err)
		message(c, http.StatusInternalServerError, msgInternal)
	}
}
