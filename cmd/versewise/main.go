package main

// @title           VerseWise API
// @version         1.0
// @description     Bible study backend. VerseWise answers theological questions grounded in an interpretation library, serves scripture text in several translations and the original languages, and looks up Greek and Hebrew lexicon entries.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"encoding/hex"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/OrtizDiego/versewise/internal/adapters/driven/ai"
	"github.com/OrtizDiego/versewise/internal/adapters/driven/auth"
	"github.com/OrtizDiego/versewise/internal/adapters/driven/bibleapi"
	"github.com/OrtizDiego/versewise/internal/adapters/driven/bolls"
	"github.com/OrtizDiego/versewise/internal/adapters/driven/postgres"
	redisadapter "github.com/OrtizDiego/versewise/internal/adapters/driven/redis"
	"github.com/OrtizDiego/versewise/internal/adapters/driving/http"
	"github.com/OrtizDiego/versewise/internal/config"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
	"github.com/OrtizDiego/versewise/internal/core/services"
	"github.com/OrtizDiego/versewise/internal/runtime"
)

var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("versewise %s starting", version)

	ctx := context.Background()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Secret encryption for AI provider keys =====
	encryptor, err := postgres.NewSecretEncryptor(encryptionKey(cfg.Auth.EncryptionKey))
	if err != nil {
		log.Fatalf("Invalid ENCRYPTION_KEY: %v", err)
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(cfg.Auth.JWTSecret)
	aiFactory := ai.NewFactory()

	userStore := postgres.NewUserStore(db)
	documentStore := postgres.NewDocumentStore(db)
	corpusStore := postgres.NewCorpusStore(db)
	settingsStore := postgres.NewSettingsStore(db, encryptor)

	// ===== Session store (Redis if available, otherwise PostgreSQL) =====
	var sessionStore driven.SessionStore
	var verseCache driven.VerseCache
	if redisClient != nil {
		sessionStore = redisadapter.NewSessionStore(redisClient)
		verseCache = redisadapter.NewVerseCache(redisClient, redisadapter.DefaultVerseTTL)
		log.Println("Using Redis session store and verse cache")
	} else {
		sessionStore = postgres.NewSessionStore(db)
		log.Println("Using PostgreSQL session store, verse caching disabled")
	}

	// ===== Scripture providers =====
	bollsClient := bolls.NewClient(cfg.Providers.BollsBaseURL)
	bibleAPIClient := bibleapi.NewClient(cfg.Providers.BibleAPIBaseURL)

	// ===== Runtime AI registry =====
	runtimeServices := runtime.NewServices()
	loadAIServices(ctx, settingsStore, aiFactory, runtimeServices)

	// ===== Services (core business logic) =====
	logger := slog.Default()
	authService := services.NewAuthService(userStore, sessionStore, authAdapter)
	assistantService := services.NewAssistantService(documentStore, corpusStore, runtimeServices, logger)
	bibleService := services.NewBibleService(
		[]driven.ScriptureProvider{bibleAPIClient},
		bollsClient,
		bollsClient,
		verseCache,
		logger,
	)
	settingsService := services.NewSettingsService(settingsStore, aiFactory, runtimeServices, logger)

	// ===== HTTP server =====
	server := http.NewServer(
		http.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			Version:        version,
			AllowedOrigins: []string{"*"},
		},
		authService,
		assistantService,
		bibleService,
		settingsService,
		db,
		redisPinger(redisClient),
		logger,
	)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadAIServices restores the persisted AI configuration into the runtime
// registry. A fresh installation has no settings yet; the registry then
// stays empty until an admin configures providers.
func loadAIServices(ctx context.Context, store driven.SettingsStore, factory driven.AIServiceFactory, services *runtime.Services) {
	settings, err := store.GetAISettings(ctx)
	if err != nil {
		log.Println("No AI settings persisted, AI features disabled until configured")
		return
	}

	services.SetRetrieval(settings.MatchThreshold, settings.MatchCount)

	if embedding, err := factory.CreateEmbeddingService(&settings.Embedding); err != nil {
		log.Printf("Warning: failed to create embedding service: %v", err)
	} else if embedding != nil {
		services.SetEmbeddingService(embedding)
		log.Printf("Embedding service ready (%s/%s)", settings.Embedding.Provider, settings.Embedding.Model)
	}

	if generator, err := factory.CreateAnswerGenerator(&settings.Generator); err != nil {
		log.Printf("Warning: failed to create answer generator: %v", err)
	} else if generator != nil {
		services.SetGenerator(generator)
		log.Printf("Answer generator ready (%s/%s)", settings.Generator.Provider, settings.Generator.Model)
	}
}

// encryptionKey decodes the configured key, accepting 64 hex chars or 32
// raw bytes. An empty value derives a development-only key so local runs
// work without setup; NewSecretEncryptor still enforces the length.
func encryptionKey(value string) []byte {
	if value == "" {
		log.Println("Warning: ENCRYPTION_KEY not set, using development key")
		return []byte("development-key-do-not-use-prod!")
	}
	if decoded, err := hex.DecodeString(value); err == nil && len(decoded) == 32 {
		return decoded
	}
	return []byte(value)
}

// redisPinger adapts the redis client to the server health interface,
// keeping the nil case nil so readiness skips the check.
func redisPinger(client *redis.Client) http.Pinger {
	if client == nil {
		return nil
	}
	return pingAdapter{client}
}

type pingAdapter struct {
	client *redis.Client
}

func (p pingAdapter) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
