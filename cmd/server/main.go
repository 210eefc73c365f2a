package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/instantfork/instantfork-api/internal/config"
    "github.com/instantfork/instantfork-api/internal/database"
    "github.com/instantfork/instantfork-api/internal/geo"
    "github.com/instantfork/instantfork-api/internal/handler"
    "github.com/instantfork/instantfork-api/internal/middleware"
    "github.com/instantfork/instantfork-api/internal/queue"
    "github.com/instantfork/instantfork-api/internal/repository"
    "github.com/instantfork/instantfork-api/internal/router"
)

func main() {
    // .env is optional; real deployments set variables directly.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the response cache and the rate limiter.  A nil client
    // (Redis down or unconfigured) degrades both to pass-through.
    rdb := config.NewRedisClient()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    restaurants := repository.NewRestaurantRepo(db)
    deals := repository.NewDealRepo(db)
    claims := repository.NewClaimRepo(db)
    favorites := repository.NewFavoriteRepo(db)
    ratings := repository.NewRatingRepo(db)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    publicH := &handler.PublicHandler{RestaurantRepo: restaurants, DealRepo: deals, RatingRepo: ratings}
    claimH := handler.NewClaimHandler(cfg, deals, claims, restaurants)
    profileH := handler.NewProfileHandler(users, favorites, ratings, deals)
    ownerH := handler.NewOwnerHandler(restaurants, deals, claims)
    geoH := handler.NewGeoHandler(geo.NewGeocoder(cfg.GeocoderURL))

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    rateLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    responseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, geoH, responseCache)
    router.RegisterCustomer(e, claimH, profileH, cfg.JWTSecret, rateLimiter)
    router.RegisterOwner(e, ownerH, cfg.JWTSecret, rateLimiter)

    // Background consumer that appends claim/redemption events to the
    // claims log.  Runs its own reconnect loop forever.
    go func() {
        if err := queue.StartClaimConsumer(); err != nil {
            log.Printf("claim consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
