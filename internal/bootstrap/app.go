// Package bootstrap builds the application dependency graph.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/artifacts"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/chat"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/improve"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm/gemini"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm/openai"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/proposals"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/queue"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/config"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/db"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object"
	localstore "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/local"
	s3store "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/s3"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/uploads"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/versions"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/render"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  *cache.Cache
	Queue  queue.Client

	Documents *documents.Store
	Artifacts *artifacts.Sync
	Proposals *proposals.Engine
	Settings  *settings.Service
	Chat      *chat.Orchestrator
	Versions  *versions.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resultCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  resultCache,
		Queue:  queueClient,
	}
	factory := NewClientFactory()
	buildServices(ctx, app, factory)

	uploadHandler := uploads.NewHandler(app.Documents, app.Settings, factory, app.Cache, app.Store)
	improveHandler := improve.NewHandler(app.Settings, factory, app.Cache)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: documents.NewHandler(app.Documents),
		ArtifactHandler: artifacts.NewHandler(app.Artifacts, app.Documents),
		ProposalHandler: proposals.NewHandler(app.Proposals),
		ChatHandler:     chat.NewHandler(app.Chat),
		UploadHandler:   uploadHandler,
		ImproveHandler:  improveHandler,
		SettingsHandler: settings.NewHandler(app.Settings),
		VersionHandler:  versions.NewHandler(app.Versions),
		CacheHandler:    cache.NewHandler(app.Cache),
	})

	return app, nil
}

func buildServices(ctx context.Context, app *App, factory llm.Factory) {
	docs := documents.NewStore()

	renderer := render.PDFRenderer{}
	sync := artifacts.NewSync(renderer, app.Store, app.Cache)
	docs.Subscribe(sync.OnReplace)

	engine := proposals.NewEngine(docs)

	settingsSvc := settings.NewService(app.Store, defaultCredentials(app.Config))
	settingsSvc.Load(ctx)

	orchestrator := chat.NewOrchestrator(docs, engine, settingsSvc, factory)

	var repo versions.Repo
	if app.DB != nil {
		repo = &versions.PGRepo{DB: app.DB}
	} else {
		repo = versions.NewMemoryRepo()
	}
	versionSvc := &versions.Service{
		Repo:     repo,
		Store:    app.Store,
		Docs:     docs,
		Renderer: renderer,
		Queue:    app.Queue,
	}

	app.Documents = docs
	app.Artifacts = sync
	app.Proposals = engine
	app.Settings = settingsSvc
	app.Chat = orchestrator
	app.Versions = versionSvc
}

// NewClientFactory returns the provider factory used by the chat, parse and
// improve surfaces. Clients are built per request so credential overrides
// take effect immediately.
func NewClientFactory() llm.Factory {
	return func(ctx context.Context, creds llm.Credentials) (llm.Client, error) {
		switch creds.Provider {
		case "openai":
			return openai.NewClient(creds.APIKey, creds.Model)
		default:
			return gemini.NewClient(creds.APIKey, creds.Model)
		}
	}
}

func defaultCredentials(cfg config.Config) llm.Credentials {
	creds := llm.Credentials{Provider: cfg.LLMProvider, Model: cfg.LLMModel}
	switch cfg.LLMProvider {
	case "openai":
		creds.APIKey = cfg.OpenAIAPIKey
	default:
		creds.APIKey = cfg.GeminiAPIKey
	}
	return creds
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory version metadata")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory version metadata: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory version metadata: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.RenderQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.RenderQueueURL)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
