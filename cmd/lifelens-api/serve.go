package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/lifelens/backend/internal/config"
	"github.com/lifelens/backend/internal/handlers"
	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/middleware"
	"github.com/lifelens/backend/internal/repository"
	"github.com/lifelens/backend/internal/service"
	"github.com/lifelens/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port     string
	logLevel string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(logLevel)
	if cfg.Server.Env != "production" {
		logCfg.Format = "text"
	}
	logger.SetDefault(logger.NewSlogLogger(logCfg))

	log := logger.Default()
	log.Info("starting LifeLens API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Repositories
	healthRepo := repository.NewHealthRepository(supabaseClient)
	moodRepo := repository.NewMoodRepository(supabaseClient)
	financialRepo := repository.NewFinancialRepository(supabaseClient)
	prayerRepo := repository.NewPrayerRepository(supabaseClient)
	patternRepo := repository.NewPatternRepository(supabaseClient)
	predictionRepo := repository.NewPredictionRepository(supabaseClient)

	// Services
	behaviorService := service.NewBehaviorService(
		healthRepo, moodRepo, financialRepo, prayerRepo, patternRepo, predictionRepo,
		service.AnalysisWindows{
			AnalysisDays: cfg.Analysis.WindowDays,
			ForecastDays: cfg.Analysis.ForecastWindowDays,
		})
	recordService := service.NewRecordService(healthRepo, moodRepo, financialRepo, prayerRepo)
	predictionService := service.NewPredictionService(predictionRepo)

	// Handlers
	recordHandler := handlers.NewRecordHandler(recordService)
	behaviorHandler := handlers.NewBehaviorHandler(behaviorService)
	predictionHandler := handlers.NewPredictionHandler(predictionService, behaviorService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(supabaseClient))
	{
		// Record routes
		v1.POST("/records/health", recordHandler.CreateHealthRecord)
		v1.POST("/records/mood", recordHandler.CreateMoodRecord)
		v1.POST("/records/financial", recordHandler.CreateFinancialRecord)
		v1.POST("/records/prayer", recordHandler.CreatePrayerRecord)
		v1.GET("/records/:category", recordHandler.ListRecords)

		// Pattern routes
		v1.GET("/patterns", behaviorHandler.GetPatterns)
		v1.POST("/patterns/analyze", behaviorHandler.AnalyzePatterns)

		// Prediction routes
		v1.GET("/predictions", predictionHandler.GetPredictions)
		v1.POST("/predictions/generate", predictionHandler.GeneratePredictions)
		v1.POST("/predictions/:id/confirm", predictionHandler.ConfirmPrediction)

		// Forecast route
		v1.GET("/forecast", behaviorHandler.GetForecast)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
