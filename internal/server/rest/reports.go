package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/netx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/reports"
	"github.com/gin-gonic/gin"
)

func (h *Handler) report(c *gin.Context) {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		h.fail(c, resReport, err)
		return
	}
	pdf, err := h.d.Reports.Build(c.Request.Context(), userID(c), kind)
	if err != nil {
		h.fail(c, resReport, err)
		return
	}
	name := fmt.Sprintf("pitchpoa-%s-%s.pdf", kind, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", netx.Attachment(name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
