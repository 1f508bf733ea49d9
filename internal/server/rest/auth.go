package rest

import (
	"net/http"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/gin-gonic/gin"
)

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) register(c *gin.Context) {
	var cred models.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		message(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	res, err := h.d.Users.Register(c.Request.Context(), cred.Email, cred.Password)
	if err != nil {
		h.fail(c, resUser, err)
		return
	}
	h.logger.Info(c.Request.Context(), "Registered", "user_id", res.User.ID)
	c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User})
}

func (h *Handler) login(c *gin.Context) {
	var cred models.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		message(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	res, err := h.d.Users.Login(c.Request.Context(), cred.Email, cred.Password)
	if err != nil {
		h.fail(c, resUser, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.d.Users.Me(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, resUser, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
