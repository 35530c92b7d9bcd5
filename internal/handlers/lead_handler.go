package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
	"leadflow/internal/models"
	"leadflow/internal/services"
)

type LeadHandler struct {
	Service   *services.LeadService
	Dashboard *services.DashboardService
	Latency   services.Latency
}

func NewLeadHandler(service *services.LeadService, dashboard *services.DashboardService, latency services.Latency) *LeadHandler {
	return &LeadHandler{Service: service, Dashboard: dashboard, Latency: latency}
}

// CreateLeadRequest is the manual upload form.
type CreateLeadRequest struct {
	CompanyName     string   `json:"company_name" binding:"required" example:"Apex Mining Solutions"`
	Industry        string   `json:"industry" example:"Mining"`
	CurrentClass    string   `json:"current_class" example:"Class V"`
	TargetClass     string   `json:"target_class" example:"Class XIII"`
	WageBill        float64  `json:"wage_bill" binding:"gte=0" example:"45000000"`
	PotentialSaving *float64 `json:"potential_saving,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"Pending NOA"`
}

type ContactRequest struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

type GroupRiskRequest struct {
	Status models.GroupRiskStatus `json:"status" binding:"required" example:"Interested"`
}

type RecommendationRequest struct {
	Type   models.RecommendationType `json:"type" binding:"required" example:"Reclassification"`
	Upload bool                      `json:"upload"`
}

// @Summary      List leads
// @Description  Without a view, returns the leads visible to the current user.
// @Tags         Leads
// @Produce      json
// @Param        view    query     string  false  "upload | allocation | enrichment | approval | submission"
// @Param        status  query     string  false  "exact status filter"
// @Success      200     {array}   models.Lead
// @Failure      400     {object}  map[string]string
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	user := currentUser(c)
	viewName := c.Query("view")
	if viewName == "" {
		leads := h.Dashboard.VisibleLeads(user)
		if status := c.Query("status"); status != "" {
			leads = filterStatus(leads, models.LeadStatus(status))
		}
		c.JSON(http.StatusOK, leads)
		return
	}

	view, err := services.ParseView(viewName)
	if err != nil {
		respondError(c, err)
		return
	}
	out := []*models.Lead{}
	for _, l := range h.Dashboard.ListView(view, c.Query("status")) {
		if authz.CanSee(user, l.BrokerOwner) {
			out = append(out, l)
		}
	}
	c.JSON(http.StatusOK, out)
}

func filterStatus(leads []*models.Lead, status models.LeadStatus) []*models.Lead {
	out := []*models.Lead{}
	for _, l := range leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

func (h *LeadHandler) Board(c *gin.Context) {
	c.JSON(http.StatusOK, h.Dashboard.Board(currentUser(c)))
}

func (h *LeadHandler) Counts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Dashboard.StatusCountsFor(currentUser(c)))
}

// @Summary      Upload a single lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      CreateLeadRequest  true  "Lead"
// @Success      201   {object}  services.Outcome
// @Failure      400   {object}  map[string]string
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Service.AddLead(&models.Lead{
		CompanyName:     req.CompanyName,
		Industry:        req.Industry,
		CurrentClass:    orUnknown(req.CurrentClass),
		TargetClass:     orUnknown(req.TargetClass),
		WageBill:        req.WageBill,
		PotentialSaving: req.PotentialSaving,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !authz.CanSee(currentUser(c), lead.BrokerOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary      Preview the document pack
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  models.DocumentPack
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /leads/{id}/documents [get]
func (h *LeadHandler) Documents(c *gin.Context) {
	lead, err := h.Service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !authz.CanSee(currentUser(c), lead.BrokerOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	pack, err := h.Service.PreviewDocuments(lead.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := services.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := h.Service.UpdateStatus(c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadHandler) UpdateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Latency.Wait()
	out, err := h.Service.UpdateContactDetails(c.Param("id"), req.ContactName, req.ContactPhone, req.ContactEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadHandler) UpdateGroupRisk(c *gin.Context) {
	var req GroupRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Service.UpdateGroupRiskStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Recommendation either only records the type or, with upload set, uploads
// the recommendation pack and sends the lead for RMA review.
func (h *LeadHandler) Recommendation(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		out services.Outcome
		err error
	)
	if req.Upload {
		h.Latency.Wait()
		out, err = h.Service.UploadRecommendation(c.Param("id"), req.Type)
	} else {
		out, err = h.Service.UpdateRecommendation(c.Param("id"), req.Type)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
