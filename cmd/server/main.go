package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiendabot/backend/internal/catalog"
	"tiendabot/backend/internal/chat"
	"tiendabot/backend/internal/config"
	"tiendabot/backend/internal/httpapi"
	"tiendabot/backend/internal/llm"
	"tiendabot/backend/internal/session"
)

func main() {
	cfg := config.Load()
	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatalf("invalid security configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closers := make([]func() error, 0, 2)

	var source catalog.Source
	switch {
	case cfg.DatabaseURL != "":
		pg, err := catalog.NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with a fallback catalog", err)
		}
		source = pg
		closers = append(closers, pg.Close)
		log.Println("catalog: postgres")
	case cfg.CatalogPath != "":
		source = catalog.NewFileSource(cfg.CatalogPath)
		log.Printf("catalog: file %s", cfg.CatalogPath)
	default:
		source = catalog.SeededSource()
		log.Println("catalog: seeded demo data")
	}

	index := catalog.NewIndex(source)
	if err := index.Load(ctx); err != nil {
		log.Fatalf("catalog load: %v", err)
	}

	client, err := llm.NewOpenAIClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   int64(cfg.LLM.MaxTokens),
	})
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}

	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
		if err := redisStore.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using in-memory sessions", err)
		} else {
			sessions = redisStore
			closers = append(closers, redisStore.Close)
			log.Println("sessions: redis")
		}
	} else {
		log.Println("sessions: in-memory")
	}

	engine := chat.NewEngine(index, client)
	auth, err := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.APIUser, cfg.APIPassword)
	if err != nil {
		log.Fatalf("auth manager: %v", err)
	}
	api := httpapi.New(engine, sessions, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("chat backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	if cfg.APIPassword == "" {
		return fmt.Errorf("API_PASSWORD must be set")
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set")
	}
	return nil
}
