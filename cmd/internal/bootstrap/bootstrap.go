// Package bootstrap wires the application's dependencies by hand. The graph
// is small enough that explicit construction stays readable and keeps startup
// failures close to the component that caused them.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mindmap-backend/application/services"
	"mindmap-backend/infrastructure/config"
	"mindmap-backend/infrastructure/llm"
	dynamorepo "mindmap-backend/infrastructure/persistence/dynamodb"
	"mindmap-backend/interfaces/http/rest"
	"mindmap-backend/interfaces/http/rest/handlers"
	"mindmap-backend/pkg/auth"
	"mindmap-backend/pkg/errors"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// App holds the fully wired application.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Handler http.Handler
}

// NewApp loads configuration and builds the dependency graph bottom-up.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	repo := dynamorepo.NewMindMapRepository(dynamoClient, cfg.DynamoDBTable, logger)

	gateway := llm.NewClient(llm.Config{
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	})

	generationService := services.NewGenerationService(gateway, logger)
	mindmapService := services.NewMindMapService(repo, logger)

	errHandler := errors.NewErrorHandler(logger)
	generateHandler := handlers.NewGenerateHandler(generationService, errHandler, logger)
	mindmapHandler := handlers.NewMindMapHandler(mindmapService, errHandler, logger)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" && cfg.IsDevelopment() {
		// Validate() enforces a real secret in production.
		jwtSecret = "local-development-secret"
		logger.Warn("JWT_SECRET not set, using development default")
	}
	jwtValidator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     jwtSecret,
		Issuer:        cfg.JWTIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	router := rest.NewRouter(cfg, generateHandler, mindmapHandler, jwtValidator, logger)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Handler: router.Setup(),
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
