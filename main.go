package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DvizhHSE/Dvizh-backend/config"
	"github.com/DvizhHSE/Dvizh-backend/controllers"
	"github.com/DvizhHSE/Dvizh-backend/middleware"
	"github.com/DvizhHSE/Dvizh-backend/services"
	"github.com/DvizhHSE/Dvizh-backend/store"
	"github.com/DvizhHSE/Dvizh-backend/utils"
)

// defaultCategories seed an empty categories collection on first start.
var defaultCategories = []string{"Conference", "Meetup", "Hackathon"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Connect(startupCtx, store.ConnectOptions{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
		Attempts: cfg.MongoConnectRetries,
		Backoff:  cfg.MongoConnectBackoff,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	if err := db.EnsureIndexes(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("could not create indexes")
	}

	hasher := utils.NewBcryptHasher(cfg.BcryptCost)
	userService := services.NewUserService(db.Users(), hasher, log.Logger)
	eventService := services.NewEventService(db.Events(), db.Users(), db.Categories(), log.Logger)
	categoryService := services.NewCategoryService(db.Categories(), log.Logger)
	achievementService := services.NewAchievementService(db.Achievements())
	relationshipService := services.NewRelationshipService(
		db.Users(), db.Events(), db.Achievements(),
		services.ParseRegistrationPolicy(cfg.RegistrationPolicy),
		log.Logger,
	)

	if err := categoryService.Seed(startupCtx, defaultCategories...); err != nil {
		log.Fatal().Err(err).Msg("could not seed categories")
	}

	controllers.RegisterValidators()

	auth := controllers.NewAuthController(userService)
	users := controllers.NewUserController(userService, relationshipService, eventService)
	events := controllers.NewEventController(eventService, relationshipService)
	admin := controllers.NewAdminController(userService, relationshipService, achievementService, eventService)
	categories := controllers.NewCategoryController(categoryService)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log.Logger))
	router.Use(middleware.CORS())

	// credential endpoints are rate limited per client IP
	authLimiter := ratelimit.RateLimiter(
		ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 10}),
		&ratelimit.Options{
			ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			},
			KeyFunc: func(c *gin.Context) string { return c.ClientIP() },
		},
	)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authLimiter, auth.Register)
			authGroup.POST("/login", authLimiter, auth.Login)
		}

		userGroup := api.Group("/users")
		{
			userGroup.POST("/add_friend", users.AddFriend)
			userGroup.GET("/:id", users.GetUser)
			userGroup.PATCH("/:id", users.UpdateProfile)
			userGroup.GET("/:id/home", users.Homepage)
			userGroup.POST("/:id/favorites/:event_id", users.AddFavorite)
			userGroup.POST("/:id/events", events.Create)
		}

		eventGroup := api.Group("/events")
		{
			eventGroup.GET("", events.List)
			eventGroup.GET("/:id", events.Get)
			eventGroup.POST("/:id/register", events.Register)
			eventGroup.PATCH("/:id/picture", events.UpdatePicture)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.GET("/users", admin.ListUsers)
			adminGroup.POST("/users/:id/activate", admin.ActivateUser)
			adminGroup.POST("/users/:id/deactivate", admin.DeactivateUser)
			adminGroup.POST("/users/:id/grant-achievement/:achievement_id", admin.GrantAchievement)
			adminGroup.POST("/create_achievement", admin.CreateAchievement)
			adminGroup.POST("/events/advance-statuses", admin.AdvanceEventStatuses)
			adminGroup.POST("/create_categories", categories.Create)
		}

		api.GET("/categories", categories.List)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddress,
		Handler: router,
	}

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting MongoDB")
	}

	log.Info().Msg("server exited")
}
