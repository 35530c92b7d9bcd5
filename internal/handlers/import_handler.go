package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leadflow/internal/models"
	"leadflow/internal/services"
)

const maxImportSize = 8 << 20

type ImportHandler struct {
	Service  *services.LeadService
	Notifier services.Notifier
	Latency  services.Latency
	// MaxSize caps the upload in bytes; larger bodies are rejected with 413.
	MaxSize int64
}

func NewImportHandler(service *services.LeadService, notifier services.Notifier, latency services.Latency) *ImportHandler {
	return &ImportHandler{Service: service, Notifier: notifier, Latency: latency, MaxSize: maxImportSize}
}

type ImportPreview struct {
	Count int                `json:"count"`
	Leads []models.LeadDraft `json:"leads"`
}

// @Summary      Bulk import leads from CSV
// @Description  Accepts a text/csv body or a multipart "file". The first line is a header and is always skipped.
// @Tags         Import
// @Accept       text/csv
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  false  "CSV file"
// @Success      201   {object}  services.BulkOutcome
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      413   {object}  map[string]string
// @Router       /leads/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	drafts, ok := h.parse(c)
	if !ok {
		return
	}
	h.Latency.Wait()
	out, err := h.Service.AddBulkLeads(drafts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Preview parses the upload without touching the store.
func (h *ImportHandler) Preview(c *gin.Context) {
	drafts, ok := h.parse(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ImportPreview{Count: len(drafts), Leads: drafts})
}

func (h *ImportHandler) parse(c *gin.Context) ([]models.LeadDraft, bool) {
	body, err := h.source(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer body.Close()

	limit := h.MaxSize
	if limit <= 0 {
		limit = maxImportSize
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if int64(len(data)) > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d byte limit", limit)})
		return nil, false
	}

	drafts, err := services.ParseLeadCSV(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, services.ErrNoValidLeads) && h.Notifier != nil {
			h.Notifier.Notify("No valid leads found in CSV. Check format.", models.NotifyError)
		}
		respondError(c, err)
		return nil, false
	}
	return drafts, true
}

func (h *ImportHandler) source(c *gin.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	if c.Request.Body == nil {
		return nil, errors.New("empty body")
	}
	return c.Request.Body, nil
}
