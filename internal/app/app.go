// Package app wires the services together and drives the interactive CLI.
package app

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/voyageapp/voyage-client/internal/auth"
	"github.com/voyageapp/voyage-client/internal/config"
	"github.com/voyageapp/voyage-client/internal/i18n"
	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/media"
	"github.com/voyageapp/voyage-client/internal/network"
	"github.com/voyageapp/voyage-client/internal/pets"
	"github.com/voyageapp/voyage-client/internal/registration"
	"github.com/voyageapp/voyage-client/internal/session"
	"github.com/voyageapp/voyage-client/internal/storage"
	"github.com/voyageapp/voyage-client/internal/upload"

	_ "modernc.org/sqlite"
)

type App struct {
	config       *config.Config
	log          logging.Logger
	sessions     session.Provider
	authService  *auth.Service
	petService   *pets.Service
	uploads      *upload.Service
	registration *registration.Service
	tr           *i18n.Translator
	bundle       *i18n.Bundle
	db           *sql.DB
	reader       *bufio.Reader
	userEmail    string
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := registration.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	sessions := session.NewMemoryProvider()

	apiClient := network.NewClient(network.ClientOptions{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		MaxRetries: cfg.RequestRetries,
		Tokens:     &session.TokenSource{Provider: sessions},
		Log:        log,
		OnError: func(ctx context.Context, err error) {
			log.Debug(ctx, "request failed", "category", network.Categorize(err), "error", err)
		},
	})

	store, err := storage.NewS3Storage(ctx, storage.S3Options{
		Endpoint:  cfg.StorageEndpoint,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	processor := media.NewProcessor(media.NoFrameSupport{}, log)
	uploads := upload.NewService(newPathPicker(reader, os.Stdout), processor, store,
		upload.Buckets{Private: cfg.PrivateBucket, Public: cfg.PublicBucket}, log)

	petService := pets.NewService(apiClient, log)

	bundle, err := i18n.NewBundle()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load locales: %w", err)
	}

	return &App{
		config:       cfg,
		log:          log,
		sessions:     sessions,
		authService:  auth.NewService(apiClient, sessions, log),
		petService:   petService,
		uploads:      uploads,
		registration: registration.NewService(registration.NewSQLiteRepository(db), petService, log),
		bundle:       bundle,
		tr:           bundle.Translator(cfg.Locale),
		db:           db,
		reader:       reader,
	}, nil
}

func (a *App) isLoggedIn() bool {
	_, err := a.sessions.Current(context.Background())
	return err == nil
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
