package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cmolina12/senehorario/api/swagger"
	"github.com/cmolina12/senehorario/internal/catalog"
	"github.com/cmolina12/senehorario/internal/handler"
	"github.com/cmolina12/senehorario/internal/middleware"
	"github.com/cmolina12/senehorario/internal/repository"
	"github.com/cmolina12/senehorario/internal/service"
	"github.com/cmolina12/senehorario/internal/solver"
	"github.com/cmolina12/senehorario/pkg/cache"
	"github.com/cmolina12/senehorario/pkg/config"
	"github.com/cmolina12/senehorario/pkg/database"
	"github.com/cmolina12/senehorario/pkg/logger"
	corsmiddleware "github.com/cmolina12/senehorario/pkg/middleware/cors"
	reqidmiddleware "github.com/cmolina12/senehorario/pkg/middleware/requestid"
)

// @title senehorario API
// @version 1.0.0
// @description Course planning backend for the university catalog
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, planning state will not survive restarts", "error", err)
		redisClient = nil
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		if cfg.Plans.Enabled {
			logr.Sugar().Warnw("postgres unavailable, disabling saved plans", "error", err)
			cfg.Plans.Enabled = false
		}
		db = nil
	}

	validate := validator.New()

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logr)
	solverClient := solver.NewClient(cfg.Solver.URL, cfg.Solver.Timeout, logr)

	stateRepo := repository.NewStateRepository(redisClient, cfg.Planning.StateTTL, logr)

	metricsSvc := service.NewMetricsService()
	calendarSvc := service.NewCalendarService(logr)
	courseSvc := service.NewCourseService(catalogClient, logr)
	planningSvc := service.NewPlanningService(catalogClient, solverClient, stateRepo, calendarSvc, metricsSvc, validate, logr)
	sessionSvc := service.NewSessionService(cfg.Session.Secret, cfg.Session.Expiration, logr)
	exportSvc := service.NewExportService(planningSvc, cfg.Exports.SemesterWeeks, logr)

	sessionHandler := handler.NewSessionHandler(sessionSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	planningHandler := handler.NewPlanningHandler(planningSvc, calendarSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/sessions", sessionHandler.Create)
	api.GET("/courses", courseHandler.Search)
	api.GET("/courses/:code/sections", courseHandler.Sections)

	authed := api.Group("", middleware.Session(sessionSvc))

	planning := authed.Group("/planning")
	planning.GET("", planningHandler.Get)
	planning.DELETE("", planningHandler.Clear)
	planning.POST("/toggle", planningHandler.Toggle)
	planning.POST("/schedules/next", planningHandler.Next)
	planning.POST("/schedules/prev", planningHandler.Previous)
	planning.GET("/events", planningHandler.Events)

	if cfg.Exports.Enabled {
		planning.GET("/export", exportHandler.Download)
	}

	if cfg.Plans.Enabled && db != nil {
		planRepo := repository.NewPlanRepository(db)
		planSvc := service.NewPlanService(planRepo, planningSvc, validate, logr)
		planHandler := handler.NewPlanHandler(planSvc)

		plans := authed.Group("/plans")
		plans.POST("", planHandler.Save)
		plans.GET("", planHandler.List)
		plans.POST("/:id/load", planHandler.Load)
		plans.DELETE("/:id", planHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
