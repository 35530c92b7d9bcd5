package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/models"
	"leadflow/internal/services"
)

// WorkflowHandler exposes the status triggers of the lead workflow.
type WorkflowHandler struct {
	Service *services.LeadService
	Latency services.Latency
}

func NewWorkflowHandler(service *services.LeadService, latency services.Latency) *WorkflowHandler {
	return &WorkflowHandler{Service: service, Latency: latency}
}

type AssignRequest struct {
	Broker string `json:"broker" binding:"required" example:"Elton Whitten"`
}

// SignaturePackResponse is the outcome plus the generated pack.
type SignaturePackResponse struct {
	services.Outcome
	Pack *models.DocumentPack `json:"pack,omitempty"`
}

func (h *WorkflowHandler) trigger(fn func(string) (services.Outcome, error), delayed bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if delayed {
			h.Latency.Wait()
		}
		out, err := fn(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *WorkflowHandler) Archive() gin.HandlerFunc { return h.trigger(h.Service.Archive, false) }

func (h *WorkflowHandler) SendToRMA() gin.HandlerFunc { return h.trigger(h.Service.SendToRMA, false) }

func (h *WorkflowHandler) RequestNOA() gin.HandlerFunc { return h.trigger(h.Service.RequestNOA, false) }

func (h *WorkflowHandler) UploadNOA() gin.HandlerFunc { return h.trigger(h.Service.UploadNOA, true) }

func (h *WorkflowHandler) SkipNOA() gin.HandlerFunc { return h.trigger(h.Service.SkipNOA, false) }

func (h *WorkflowHandler) Approve() gin.HandlerFunc {
	return h.trigger(h.Service.ApproveDocuments, false)
}

func (h *WorkflowHandler) Reject() gin.HandlerFunc {
	return h.trigger(h.Service.RejectDocuments, false)
}

func (h *WorkflowHandler) UploadSignedDocs() gin.HandlerFunc {
	return h.trigger(h.Service.UploadSignedDocs, true)
}

func (h *WorkflowHandler) Submit() gin.HandlerFunc { return h.trigger(h.Service.SubmitToCF, false) }

func (h *WorkflowHandler) Close() gin.HandlerFunc { return h.trigger(h.Service.CloseLead, false) }

// @Summary      Download the client signature pack
// @Description  Generates LOA, CF-1B, CF-2A and RMA registration and moves the lead to Awaiting Signed Documents.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  SignaturePackResponse
// @Failure      409  {object}  map[string]string
// @Router       /leads/{id}/signature-pack [post]
func (h *WorkflowHandler) SignaturePack(c *gin.Context) {
	h.Latency.Wait()
	out, pack, err := h.Service.DownloadSignaturePack(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SignaturePackResponse{Outcome: out, Pack: pack})
}

// @Summary      Allocate a lead to a broker
// @Tags         Workflow
// @Accept       json
// @Produce      json
// @Param        id      path      string         true  "Lead ID"
// @Param        assign  body      AssignRequest  true  "Broker"
// @Success      200     {object}  services.Outcome
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /leads/{id}/assign [post]
func (h *WorkflowHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Service.AssignBroker(c.Param("id"), req.Broker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Save RMA enrichment
// @Description  Replaces the RMA data and marks the lead RMA Verified.
// @Tags         Workflow
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Lead ID"
// @Param        data  body      models.RMAData  true  "Enrichment form"
// @Success      200   {object}  services.Outcome
// @Failure      400   {object}  map[string]string
// @Router       /leads/{id}/rma [put]
func (h *WorkflowHandler) SaveEnrichment(c *gin.Context) {
	var data models.RMAData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateEnrichment(data); err != nil {
		respondError(c, err)
		return
	}
	out, err := h.Service.SaveEnrichment(c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// FormState evaluates the conditional rules of the enrichment form.
func (h *WorkflowHandler) FormState(c *gin.Context) {
	data := services.DefaultRMAData()
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.FormRules(data))
}
