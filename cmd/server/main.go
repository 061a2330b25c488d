package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/health-tracker/internal/config"
	"github.com/iliyamo/health-tracker/internal/database"
	"github.com/iliyamo/health-tracker/internal/handler"
	"github.com/iliyamo/health-tracker/internal/middleware"
	"github.com/iliyamo/health-tracker/internal/migrate"
	"github.com/iliyamo/health-tracker/internal/queue"
	"github.com/iliyamo/health-tracker/internal/repository"
	"github.com/iliyamo/health-tracker/internal/router"
)

func main() {
	// .env is optional; in production the variables come from the runtime.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := migrate.Up(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis powers response caching and the auth rate limiter. Both
	// degrade to pass-through when it is unreachable.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	resets := repository.NewResetRepo(db)
	logs := repository.NewLogRepo(db)
	profiles := repository.NewProfileRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens, resets)
	oauthH := handler.NewOAuthHandler(cfg, users, authH)
	logH := handler.NewLogHandler(logs)
	profH := handler.NewProfileHandler(profiles)
	pageH := handler.NewPageHandler(logs, profiles)

	var cache, limiter echo.MiddlewareFunc
	if rdb != nil {
		if cc := config.LoadCacheConfig(); cc.Enabled {
			cache = middleware.NewRedisCache(cc, rdb)
		}
		if rc := config.LoadRateLimitConfig(); rc.Enabled {
			limiter = middleware.NewTokenBucket(rc, rdb)
		}
	}

	e := echo.New()
	e.HideBanner = true

	router.RegisterBase(e, db, pageH)
	router.RegisterAuth(e, authH, oauthH, cfg.JWTSecret, limiter)
	router.RegisterAPI(e, logH, profH, pageH, cfg.JWTSecret, cache)
	router.RegisterPages(e, pageH, cfg.JWTSecret)

	// The mailer drains password reset events in the background. Startup
	// does not block on the broker being up.
	go func() {
		if err := queue.StartMailerConsumer(); err != nil {
			log.Printf("mailer consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
