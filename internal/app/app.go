package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "leadflow/docs"
	"leadflow/internal/config"
	"leadflow/internal/handlers"
	"leadflow/internal/middleware"
	"leadflow/internal/realtime"
	"leadflow/internal/repositories"
	"leadflow/internal/routes"
	"leadflow/internal/services"
)

const shutdownTimeout = 5 * time.Second

// App holds the wired dashboard: store, services and the gin router.
type App struct {
	Config        *config.Config
	Log           *logrus.Logger
	Leads         *services.LeadService
	Dashboard     *services.DashboardService
	Notifications *services.NotificationCenter
	Hub           *realtime.Hub
	Router        *gin.Engine
}

// New wires everything from cfg. now may be nil.
func New(cfg *config.Config, log *logrus.Logger, now func() time.Time) (*App, error) {
	if now == nil {
		now = time.Now
	}

	// === Store ===
	leadRepo := repositories.NewLeadRepository()
	activity := repositories.NewActivityLog(now)
	if cfg.Dashboard.SeedDemoData {
		if err := repositories.Seed(leadRepo, activity, now()); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		log.WithField("leads", leadRepo.CountLeads()).Info("demo data loaded")
	}

	// === Services ===
	center := services.NewNotificationCenter(cfg.Notifications.TTL, now, log)
	hub := realtime.NewHub(log)
	center.Subscribe(hub)

	policy := services.TransitionPolicy{Enforce: cfg.Workflow.EnforceTransitions}
	docs := services.NewDocumentService(services.TemplateGenerator{}, now)
	leadService := services.NewLeadService(leadRepo, activity, center, policy, docs,
		services.WithClock(now),
		services.WithLogger(log),
	)
	dashboardService := services.NewDashboardService(leadRepo, activity, now)
	latency := services.NewLatency(cfg.Workflow.SimulatedLatency)

	// === Handlers ===
	leadHandler := handlers.NewLeadHandler(leadService, dashboardService, latency)
	workflowHandler := handlers.NewWorkflowHandler(leadService, latency)
	importHandler := handlers.NewImportHandler(leadService, center, latency)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(center, hub, log)

	// === Gin ===
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		cfg.Dashboard.DefaultUser,
		leadHandler,
		workflowHandler,
		importHandler,
		dashboardHandler,
		notificationHandler,
	)

	return &App{
		Config:        cfg,
		Log:           log,
		Leads:         leadService,
		Dashboard:     dashboardService,
		Notifications: center,
		Hub:           hub,
		Router:        router,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.WithFields(logrus.Fields{
			"addr":                srv.Addr,
			"enforce_transitions": a.Config.Workflow.EnforceTransitions,
			"default_user":        a.Config.Dashboard.DefaultUser,
		}).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
