package main

import (
	"log"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"chatquestbot/internal/bot"
	"chatquestbot/internal/clock"
	"chatquestbot/internal/config"
	"chatquestbot/internal/database"
	"chatquestbot/internal/handlers"
	"chatquestbot/internal/middleware"
	"chatquestbot/internal/repository"
	"chatquestbot/internal/scheduler"
	"chatquestbot/internal/seed"
	"chatquestbot/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	clk := clock.System{}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	warningRepo := repository.NewWarningRepository(db)

	pointsService := services.NewPointsService(pointsRepo, clk)
	userService := services.NewUserService(userRepo, cfg.OperatorIDs, clk)
	taskService := services.NewTaskService(taskRepo, clk)
	answerService := services.NewAnswerService(answerRepo, pointsService, clk, cfg.MinMessageLength)
	activityService := services.NewActivityService(
		activityRepo, userRepo, pointsService, clk,
		cfg.MinMessageLength, cfg.PointsPerWord, cfg.MaxDailyActivityPoints,
	)
	warningService := services.NewWarningService(warningRepo, clk, config.MaxWarnings)
	statsService := services.NewStatsService(pointsRepo, clk)

	if _, err := seed.EnsureTasks(taskService, cfg.TasksFile); err != nil {
		log.Printf("Warning: task seeding failed: %v", err)
	}

	if reconciled, err := answerService.ReconcileApprovedAnswers(); err != nil {
		log.Printf("Warning: award reconciliation failed: %v", err)
	} else if reconciled > 0 {
		log.Printf("Reconciled %d unpaid approved answers", reconciled)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create bot API: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	botHandler := bot.New(
		api, cfg,
		userService, taskService, answerService,
		activityService, warningService, statsService, pointsService,
	)

	cronScheduler, err := scheduler.Start(cfg, botHandler)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer cronScheduler.Stop()

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		for update := range api.GetUpdatesChan(u) {
			botHandler.HandleUpdate(update)
		}
	}()

	cronHandler := handlers.NewCronHandler(botHandler)
	statsHandler := handlers.NewStatsHandler(statsService)

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	protected := r.Group("/api")
	protected.Use(middleware.RequireCronSecret(cfg.CronSecret))
	{
		protected.POST("/cron/task", cronHandler.SendTask)
		protected.POST("/cron/week-end", cronHandler.SendWeekEnd)
		protected.GET("/stats", statsHandler.GetStats)
	}

	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
