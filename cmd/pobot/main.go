package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/osalazar/pobot/internal/adapters/http"
	"github.com/osalazar/pobot/internal/adapters/sheets"
	firestorestore "github.com/osalazar/pobot/internal/adapters/storage/firestore"
	memstore "github.com/osalazar/pobot/internal/adapters/storage/memory"
	"github.com/osalazar/pobot/internal/adapters/telegram"
	"github.com/osalazar/pobot/internal/app/dialog"
	"github.com/osalazar/pobot/internal/config"
	"github.com/osalazar/pobot/internal/domain"
	"github.com/osalazar/pobot/internal/observability"
)

func main() {
	// Local dev convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.Logger()

	// Session storage: memory or Firestore.
	var store domain.SessionStore
	switch cfg.StorageBackend {
	case "firestore":
		logger.Info("using firestore session storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore
	default:
		logger.Info("using in-memory session storage")
		store = memstore.NewSessionStore()
	}

	// The sink is opened lazily, per finalize attempt, so a broken sheets
	// setup degrades to a user-visible error instead of stopping the bot.
	openSink := func(ctx context.Context) (domain.Sink, error) {
		appender, err := sheets.Open(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSinkUnavailable, err)
		}
		return appender, nil
	}

	svc := dialog.NewService(store, cfg.SheetID, openSink)

	client := telegram.NewClient(
		&http.Client{Timeout: cfg.PollTimeout + 30*time.Second},
		cfg.APIBaseURL,
		cfg.BotToken,
	)
	bot := telegram.NewBot(client, svc)

	switch cfg.Transport {
	case config.TransportWebhook:
		handler := httpadapter.NewServer(bot)
		addr := ":" + cfg.Port
		logger.Info("webhook server listening", "addr", addr)

		srv := &http.Server{Addr: addr, Handler: handler}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}

	default:
		if err := bot.Run(ctx, cfg.PollTimeout); err != nil {
			log.Fatalf("polling loop: %v", err)
		}
	}
}
