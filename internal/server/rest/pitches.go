package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pitchpoa/internal/server/services"
	"github.com/gin-gonic/gin"
)

// multipartSlack covers form boundaries and the title field on top of the
// recording itself.
const multipartSlack = 1 << 20

func (h *Handler) analyzePitch(c *gin.Context) {
	limit := h.d.MaxUploadBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)

	fh, err := c.FormFile("audio")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			message(c, http.StatusRequestEntityTooLarge, "Recording is too large")
			return
		}
		message(c, http.StatusBadRequest, "Audio file is required")
		return
	}
	if fh.Size > limit {
		message(c, http.StatusRequestEntityTooLarge, "Recording is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, resPitch, err)
		return
	}
	defer f.Close()

	res, err := h.d.Pitches.Analyze(c.Request.Context(), userID(c), &services.PitchUpload{
		Title:       c.PostForm("title"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Audio:       f,
	})
	if err != nil {
		h.fail(c, resPitch, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listPitches(c *gin.Context) {
	list, err := h.d.Pitches.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, resPitch, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) deletePitch(c *gin.Context) {
	id := c.Param("id")
	if err := h.d.Pitches.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.fail(c, resPitch, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": resPitch.Label + " removed", "id": id})
}
