package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/handlers"
	"leadflow/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	defaultUser string,
	leadHandler *handlers.LeadHandler,
	workflowHandler *handlers.WorkflowHandler,
	importHandler *handlers.ImportHandler,
	dashboardHandler *handlers.DashboardHandler,
	notificationHandler *handlers.NotificationHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- role selector
	api := r.Group("/", middleware.CurrentUser(defaultUser))

	api.GET("/dashboard", dashboardHandler.Summary)
	api.GET("/activity", dashboardHandler.Activity)

	// LEADS
	leads := api.Group("/leads")
	{
		leads.GET("", leadHandler.List)
		leads.GET("/board", leadHandler.Board)
		leads.GET("/counts", leadHandler.Counts)
		leads.POST("", leadHandler.Create)
		leads.POST("/import", middleware.RequireAdmin(), importHandler.Import)
		leads.POST("/import/preview", importHandler.Preview)

		leads.GET("/:id", leadHandler.GetByID)
		leads.GET("/:id/documents", leadHandler.Documents)
		leads.POST("/:id/status", leadHandler.UpdateStatus)
		leads.PUT("/:id/contact", leadHandler.UpdateContact)
		leads.PUT("/:id/group-risk", leadHandler.UpdateGroupRisk)
		leads.POST("/:id/recommendation", leadHandler.Recommendation)
	}

	// WORKFLOW
	{
		leads.POST("/:id/archive", workflowHandler.Archive())
		leads.POST("/:id/send-to-rma", workflowHandler.SendToRMA())
		leads.PUT("/:id/rma", workflowHandler.SaveEnrichment)
		leads.POST("/:id/assign", middleware.RequireAdmin(), workflowHandler.Assign)
		leads.POST("/:id/request-noa", workflowHandler.RequestNOA())
		leads.POST("/:id/noa", workflowHandler.UploadNOA())
		leads.POST("/:id/noa/skip", workflowHandler.SkipNOA())
		leads.POST("/:id/approve", workflowHandler.Approve())
		leads.POST("/:id/reject", workflowHandler.Reject())
		leads.POST("/:id/signature-pack", workflowHandler.SignaturePack)
		leads.POST("/:id/signed-docs", workflowHandler.UploadSignedDocs())
		leads.POST("/:id/submit", workflowHandler.Submit())
		leads.POST("/:id/close", workflowHandler.Close())
	}

	api.POST("/rma/form-state", workflowHandler.FormState)

	// NOTIFICATIONS
	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/ws", notificationHandler.Stream)
		notifications.DELETE("/:id", notificationHandler.Dismiss)
	}

	return r
}
