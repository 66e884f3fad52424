package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/middleware"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/fadilmartias/resume-matcher/internal/scheduler"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig := config.LoadAppConfig()
	matcherConfig := config.LoadMatcherConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		// room for the 5 MB resume plus multipart overhead
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	vocab, err := matcher.LoadVocabularyFile(matcherConfig.SkillListPath)
	if err != nil {
		log.Fatalf("Could not load skill vocabulary: %v", err)
	}
	log.Printf("Loaded %d skills from %s", vocab.Len(), matcherConfig.SkillListPath)

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}

	app.Use(healthcheck.New(healthcheck.Config{
		// not ready while Gemini calls are being rejected by the circuit breaker
		ReadinessProbe: func(c *fiber.Ctx) bool {
			_, open := gemini.CircuitBreakerStatus()
			return !open
		},
	}))

	var tagger matcher.EntityTagger = gemini
	if matcherConfig.TaggerProvider == "openrouter" {
		tagger = service.NewOpenRouterService()
	}

	userRepo := repository.NewUserRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	jobRepo := repository.NewJobRepository(db)
	embeddingRepo := repository.NewEmbeddingRepository(db)

	extractor := matcher.NewExtractor(tagger, vocab, matcherConfig.NameDenylist)
	scorer := matcher.NewScorer(service.NewCachedEmbeddingService(gemini, embeddingRepo))

	cache := service.NewRecommendationCache(ctx)
	defer cache.Close()

	tokens := service.NewTokenServiceFromConfig()
	if config.LoadAuthConfig().JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	authUC := usecase.NewAuthUsecase(userRepo, tokens, config.LoadAuthConfig().AdminEmails)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, util.NewPDFTextExtractor(), extractor)
	jobUC := usecase.NewJobUsecase(jobRepo, service.NewAdzunaService(), matcherConfig.RefreshQuery)
	recommendationUC := usecase.NewRecommendationUsecase(resumeUC, jobRepo, scorer, cache)

	handler.Handlers{
		Auth:           handler.NewAuthHandler(authUC),
		Resume:         handler.NewResumeHandler(resumeUC),
		Job:            handler.NewJobHandler(jobUC),
		Recommendation: handler.NewRecommendationHandler(recommendationUC),
		Tokens:         tokens,
		UploadsPerMin:  matcherConfig.UploadsPerMin,
	}.RegisterRoutes(app)

	if matcherConfig.RefreshCron != "" {
		refresher := scheduler.New(jobUC, matcherConfig.RefreshCron, matcherConfig.RefreshQuery)
		if err := refresher.Start(ctx, true); err != nil {
			log.Fatalf("Could not start refresh scheduler: %v", err)
		}
		defer refresher.Stop()
	}

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				log.Printf("Active goroutines: %d", runtime.NumGoroutine())
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatal("could not enable pgvector: ", err)
	}
	err = db.AutoMigrate(&model.User{}, &model.Resume{}, &model.Job{}, &model.Embedding{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
