package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/config"
	"github.com/chasingbytes/resume/backend/internal/handler"
	"github.com/chasingbytes/resume/backend/internal/model/profile"
	"github.com/chasingbytes/resume/backend/internal/service/ai"
	"github.com/chasingbytes/resume/backend/internal/service/assets"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	"github.com/chasingbytes/resume/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to load configuration: invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	log.SetLevel(level)

	// Resume content and downloadable documents
	resume, err := profile.Load(cfg.Content.ProfileFile)
	if err != nil {
		log.Fatalf("failed to load profile: %v", err)
	}
	profileStore := profile.NewMemoryStore(resume)

	assetStore, err := assets.Load(cfg.Content.AssetsDir, resume.Documents)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}

	// Completion client, built once and shared by every session
	completer, err := ai.NewCompleter(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI client: %v", err)
	}
	log.Printf("AI client initialized provider=%s model=%s", cfg.AI.Provider, cfg.AI.Model)

	chatService := chat.NewService(
		ai.BuildPersonaDescriptor(resume),
		completer,
		assistant.Options{
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
			Policy:  cfg.Assistant.Policy,
		},
		cfg.Assistant.SessionIdleTTL,
	)
	go chatService.Run(ctx, cfg.Assistant.SweepInterval)

	router := handler.NewRouter(profileStore, assetStore, chatService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("resume backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
