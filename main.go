package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"askless/api"
	"askless/config"
	"askless/database"
	"askless/middleware"
	"askless/models"
	"askless/repository"
	"askless/services"

	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	config.LoadConfig()

	db, err := database.Init(config.AppConfig.Database.DSN)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	runMigrations(db)

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// The generator is optional at startup: without a credential the server
	// still serves CRUD, and /api/ask reports the credential error.
	var generator services.AnswerGenerator
	generator, err = services.NewOpenAIGenerator(config.AppConfig.LLM)
	if err != nil {
		log.Printf("WARN: [Main] LLM generator unavailable: %v", err)
		generator = nil
	}

	// Services
	profileService := services.NewProfileService(profileRepo)
	tagService := services.NewTagService(tagRepo, generator)
	duplicateService := services.NewDuplicateService(questionRepo, tagRepo, config.AppConfig.DuplicateTagThreshold)
	askService := services.NewAskService(
		profileService,
		tagService,
		duplicateService,
		questionRepo,
		answerRepo,
		generator,
		config.AppConfig.Bots,
	)
	voteService := services.NewVoteService(voteRepo)
	log.Println("INFO: [Main] Services initialized.")

	// Bot profiles are pre-seeded at startup; the endpoint re-runs the same
	// idempotent seeding on demand.
	if _, err := profileService.InitializeBots(config.AppConfig.Bots); err != nil {
		log.Printf("WARN: [Main] Failed to seed bot profiles at startup: %v", err)
	}

	apiHandler := api.NewAPIHandler(
		askService,
		voteService,
		profileService,
		tagService,
		questionRepo,
		answerRepo,
		commentRepo,
		config.AppConfig.Bots,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	r.Use(middleware.Logger())
	r.Use(middleware.Cors(config.AppConfig.Server.AllowedOrigin))
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Question{},
		&models.Tag{},
		&models.Answer{},
		&models.Comment{},
		&models.Vote{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	r.GET("/health", handler.HealthHandler)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/ask", handler.AskHandler)

		apiGroup.GET("/questions", handler.ListQuestionsHandler)
		apiGroup.POST("/questions", handler.CreateQuestionHandler)
		apiGroup.GET("/questions/:id", handler.GetQuestionHandler)
		apiGroup.GET("/questions/:id/answers", handler.ListAnswersHandler)
		apiGroup.POST("/questions/:id/answers", handler.CreateAnswerHandler)
		apiGroup.GET("/questions/:id/comments", handler.ListQuestionCommentsHandler)
		apiGroup.POST("/questions/:id/comments", handler.CreateQuestionCommentHandler)

		apiGroup.GET("/answers/:id/comments", handler.ListAnswerCommentsHandler)
		apiGroup.POST("/answers/:id/comments", handler.CreateAnswerCommentHandler)

		apiGroup.GET("/tags", handler.ListTagsHandler)
		apiGroup.POST("/tags", handler.CreateTagsHandler)

		apiGroup.GET("/top-searched", handler.TopSearchedHandler)

		apiGroup.POST("/votes", handler.CreateVoteHandler)
		apiGroup.GET("/votes", handler.GetVoteCountsHandler)

		apiGroup.POST("/bots/initialize", handler.InitializeBotsHandler)
	}
}
