package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mastery-service/internal/config"
	"mastery-service/internal/db"
	"mastery-service/internal/event"
	"mastery-service/internal/grading"
	"mastery-service/internal/handlers"
	"mastery-service/internal/mailer"
	"mastery-service/internal/mastery"
	"mastery-service/internal/middleware"
	"mastery-service/internal/notifier"
	"mastery-service/internal/predictor"
	"mastery-service/internal/repository"
	"mastery-service/internal/scheduler"
	"mastery-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}

	ctx := context.Background()
	mongoClient, err := db.Connect(ctx, &cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	database := mongoClient.Database(cfg.MongoDB.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, engine events will not be published")
	}

	// Redis is only used for submission rate limiting; absence disables it.
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	} else {
		log.Println("Redis not configured, submission rate limiting disabled")
	}

	// Interval predictor artifact: optional by design, absence means the
	// deterministic fallback handles every prediction.
	var model predictor.Model
	if cfg.Predictor.URL != "" {
		model = predictor.NewHTTPModel(cfg.Predictor.URL, cfg.Predictor.Timeout)
		log.Printf("Interval predictor configured at %s", cfg.Predictor.URL)
	} else {
		log.Println("PREDICTOR_URL not set, using fallback review intervals")
	}

	store := repository.NewStore(database)
	smtpMailer := mailer.NewSMTPMailer(&cfg.SMTP)

	grader := grading.NewGrader()
	tracker := mastery.NewTracker(store, cfg.Engine.MasteryThreshold, cfg.Engine.StatusThreshold, cfg.Engine.ProfileUpdateRetry)
	pred := predictor.NewPredictor(model)
	dispatcher := notifier.NewDispatcher(store, smtpMailer, cfg.Engine.MasteryThreshold)

	submissionService := service.NewSubmissionService(store, store.Topics, grader, tracker, pred, smtpMailer)
	progressService := service.NewProgressService(store.Attempts, store.Topics)
	settingsService := service.NewSettingsService(store.Notifications)

	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	notificationHandler := handlers.NewNotificationHandler(dispatcher)
	progressHandler := handlers.NewProgressHandler(progressService, store.Profiles)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// In-process daily sweeps; the HTTP trigger below stays safe alongside it
	// because the dispatcher is idempotent per day.
	sweeper := scheduler.New(dispatcher, cfg.Engine.DispatchTimes)
	go sweeper.Start(ctx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	publicEngine := r.Group("/public/engine")
	{
		publicEngine.GET("/progress/:userId", func(c *gin.Context) {
			progressHandler.GetUserProgress(c)
			if publisher != nil {
				publisher.Publish("engine.progress.viewed", gin.H{"user_id": c.Param("userId")})
			}
		})
		publicEngine.GET("/profile/:userId/:topicId", func(c *gin.Context) {
			progressHandler.GetMasteryProfile(c)
			if publisher != nil {
				publisher.Publish("engine.profile.viewed", gin.H{
					"user_id":  c.Param("userId"),
					"topic_id": c.Param("topicId"),
				})
			}
		})
	}

	protectedEngine := r.Group("/protected/engine")
	protectedEngine.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})
	{
		protectedEngine.POST("/submit",
			middleware.RateLimit(redisClient, cfg.Engine.SubmitRateLimit, cfg.Engine.SubmitRateWindow),
			func(c *gin.Context) {
				submissionHandler.SubmitQuiz(c)
				if publisher != nil {
					publisher.Publish("engine.attempt.recorded", gin.H{
						"user_id":   c.GetHeader("X-User-ID"),
						"timestamp": time.Now(),
					})
				}
			})

		protectedEngine.POST("/notifications/run", func(c *gin.Context) {
			notificationHandler.RunNotifications(c)
			if publisher != nil {
				publisher.Publish("engine.sweep.completed", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedEngine.GET("/notification-settings/:userId", settingsHandler.GetNotificationSettings)
		protectedEngine.PUT("/notification-settings/:userId", func(c *gin.Context) {
			settingsHandler.UpdateNotificationSettings(c)
			if publisher != nil {
				publisher.Publish("engine.settings.updated", gin.H{
					"user_id":   c.Param("userId"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	r.Run(cfg.Server.Host + ":" + cfg.Server.Port)
}
