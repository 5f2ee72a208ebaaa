package router

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dwelli/backend/internal/ai"
	"github.com/dwelli/backend/internal/auth"
	"github.com/dwelli/backend/internal/handlers"
	"github.com/dwelli/backend/internal/middleware"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/internal/services"
	"github.com/dwelli/backend/pkg/config"
	"github.com/dwelli/backend/pkg/firebase"
	"github.com/dwelli/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Users         repositories.UserRepository
	Listings      repositories.ListingRepository
	SavedListings repositories.SavedListingRepository
	Documents     repositories.DocumentRepository
	Searches      repositories.SearchPreferenceRepository // nil disables saved searches
	Blobs         storage.BlobStore
	Tokens        *auth.TokenManager
	Assistant     *ai.Assistant
	FirebaseAuth  handlers.FirebaseTokenVerifier // nil disables Firebase login
	HealthChecks  map[string]handlers.Pinger
	AuthRateLimit int
}

// SetupRoutes migrates the schema, builds the production dependencies and registers all routes
func SetupRoutes(ctx context.Context, e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, fbApp *firebase.App) error {
	if err := repositories.AutoMigrate(pgdb); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	deps := Dependencies{
		Users:         repositories.NewPostgresUserRepository(pgdb),
		Listings:      repositories.NewPostgresListingRepository(pgdb),
		SavedListings: repositories.NewPostgresSavedListingRepository(pgdb),
		Documents:     repositories.NewPostgresDocumentRepository(pgdb),
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		AuthRateLimit: cfg.AuthRateLimit,
		HealthChecks: map[string]handlers.Pinger{
			"postgres": func(ctx context.Context) error {
				sqlDB, err := pgdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		},
	}

	if mgClient != nil {
		searchRepo := repositories.NewMongoSearchPreferenceRepository(mgClient.Database(cfg.MongoDatabase))
		if err := searchRepo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create saved search indexes: %w", err)
		}
		deps.Searches = searchRepo
		deps.HealthChecks["mongo"] = func(ctx context.Context) error {
			return mgClient.Ping(ctx, nil)
		}
	}

	blobs, err := blobStore(ctx, cfg, fbApp)
	if err != nil {
		return err
	}
	deps.Blobs = blobs

	if fbApp != nil {
		deps.FirebaseAuth = fbApp.AuthClient
	}

	var gen ai.TextGenerator
	gemini, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case err == nil:
		gen = gemini
		log.Printf("Gemini text generation enabled (model %s).", cfg.GeminiModel)
	case errors.Is(err, ai.ErrNotConfigured):
		log.Println("GEMINI_API_KEY not set, AI endpoints return placeholder text.")
	default:
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	deps.Assistant = ai.NewAssistant(gen, cfg.AITimeout)

	RegisterRoutes(e, deps)
	return nil
}

func blobStore(ctx context.Context, cfg *config.Config, fbApp *firebase.App) (storage.BlobStore, error) {
	if fbApp != nil && cfg.FirebaseStorageBucket != "" {
		bucket, err := fbApp.DefaultBucket(ctx)
		if err != nil {
			return nil, err
		}
		log.Printf("Documents stored in Firebase Storage bucket %s.", cfg.FirebaseStorageBucket)
		return storage.NewBucketStore(bucket), nil
	}
	local, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	log.Printf("Documents stored on local disk under %s.", cfg.UploadDir)
	return local, nil
}

// RegisterRoutes wires handlers onto e
func RegisterRoutes(e *echo.Echo, d Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(d.HealthChecks).HealthCheck)

	api := e.Group("/api")

	// --- Unprotected routes for authentication ---
	authGroup := api.Group("/auth", middleware.RateLimitPerIP(d.AuthRateLimit))
	handlers.NewAuthHandler(d.Users, d.Tokens, d.FirebaseAuth).RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public listing catalogue ---
	listingGroup := api.Group("/listings")
	handlers.NewListingHandler(d.Listings, d.Assistant).RegisterListingRoutes(listingGroup)
	log.Println("Listing routes configured.")

	// --- Protected routes (require JWT authentication) ---
	users := api.Group("/users", middleware.JWTAuthMiddleware(d.Tokens, d.Users))

	handlers.NewUserHandler(d.Users).RegisterProfileRoutes(users)

	savedListings := services.NewSavedListingService(d.SavedListings)
	handlers.NewSavedListingHandler(savedListings).RegisterSavedListingRoutes(users)

	documents := services.NewDocumentService(d.Documents, d.Blobs)
	handlers.NewDocumentHandler(documents).RegisterDocumentRoutes(users)
	handlers.NewTenantHandler(d.Users, documents, d.Assistant).RegisterTenantRoutes(users)

	if d.Searches != nil {
		handlers.NewSearchPreferenceHandler(d.Searches).RegisterSearchRoutes(users)
		log.Println("Saved search routes configured.")
	}
	log.Println("User routes configured.")
}
