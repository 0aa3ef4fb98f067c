package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/restro-pos/gateway/internal/auth"
	"github.com/restro-pos/gateway/internal/config"
	"github.com/restro-pos/gateway/internal/router"
	"github.com/restro-pos/gateway/internal/session"
	"github.com/restro-pos/gateway/internal/upstream"
	"github.com/restro-pos/gateway/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Session storage: Redis survives terminal restarts, memory does not.
	var store session.Store
	if cfg.RedisAddr != "" {
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Unable to reach Redis at %s: %v", cfg.RedisAddr, err)
		}
		store = redisStore
		log.Printf("Session storage: redis (%s)", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		log.Println("Session storage: in-memory")
	}

	client := upstream.NewClient(cfg.APIBaseURL, store, cfg.RequestTimeout)
	users := upstream.NewUserService(client)

	ctrl := auth.NewController(store, users, auth.Options{
		OfflineFallback: cfg.OfflineFallback,
		DefaultRole:     cfg.DefaultRole,
		RestaurantID:    cfg.RestaurantID,
	})
	client.OnSessionExpired(ctrl.Invalidate)

	// Resolve the stored session before taking traffic so guards never
	// redirect during the startup check.
	bootCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	ctrl.Bootstrap(bootCtx)
	cancel()
	log.Printf("Session state: %s", ctrl.State())

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(ctrl, client, hub)

	log.Printf("Starting server on :%s (backend %s)", cfg.Port, cfg.APIBaseURL)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
