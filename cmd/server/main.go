package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/config"
	"github.com/iliyamo/event-discovery-booking/internal/database"
	"github.com/iliyamo/event-discovery-booking/internal/handler"
	"github.com/iliyamo/event-discovery-booking/internal/queue"
	"github.com/iliyamo/event-discovery-booking/internal/repository"
	"github.com/iliyamo/event-discovery-booking/internal/router"
	"github.com/iliyamo/event-discovery-booking/internal/service"
	"github.com/iliyamo/event-discovery-booking/internal/skiddle"
)

func main() {
	// .env is optional; real deployments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	categories := repository.NewCategoryRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	saved := repository.NewSavedEventRepo(db)

	engagement := service.NewEngagement(events, bookings, reviews, saved, queue.NewPublisher())
	recommender := service.NewRecommender(events, bookings)
	analytics := service.NewAnalytics(events, bookings, users)

	feed := skiddle.NewClient(cfg.SkiddleBaseURL, cfg.SkiddleAPIKey, cfg.SkiddleTimeout)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, tokens),
		Events:     handler.NewEventHandler(events, categories, bookings, reviews, saved),
		Engagement: handler.NewEngagementHandler(engagement, bookings, saved),
		Home:       handler.NewHomeHandler(recommender),
		Analytics:  handler.NewAnalyticsHandler(analytics),
		Skiddle:    handler.NewSkiddleHandler(feed),
	}

	// The booking consumer drains booking.created messages into the
	// confirmation log.  It reconnects on its own; a startup failure
	// only means the broker is not up yet.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterAPI(e, h, cfg.JWTSecret, rdb, cacheCfg, rateCfg)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
