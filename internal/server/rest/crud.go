package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// crudService is the shape shared by every per-user record service.
type crudService[T, In any] interface {
	Create(ctx context.Context, userID string, in *In) (*T, error)
	List(ctx context.Context, userID string) ([]*T, error)
	Update(ctx context.Context, userID, id string, in *In) (*T, error)
	Delete(ctx context.Context, userID, id string) error
}

func mountCRUD[T, In any](g *gin.RouterGroup, h *Handler, res resource, svc crudService[T, In]) {
	g.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), userID(c))
		if err != nil {
			h.fail(c, res, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		var in In
		if err := c.ShouldBindJSON(&in); err != nil {
			message(c, http.StatusBadRequest, msgInvalidBody)
			return
		}
		out, err := svc.Create(c.Request.Context(), userID(c), &in)
		if err != nil {
			h.fail(c, res, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})

	g.PUT("/:id", func(c *gin.Context) {
		var in In
		if err := c.ShouldBindJSON(&in); err != nil {
			message(c, http.StatusBadRequest, msgInvalidBody)
			return
		}
		out, err := svc.Update(c.Request.Context(), userID(c), c.Param("id"), &in)
		if err != nil {
			h.fail(c, res, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), userID(c), id); err != nil {
			h.fail(c, res, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": res.Label + " removed", "id": id})
	})
}
