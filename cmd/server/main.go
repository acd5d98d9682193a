package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dsql/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
	"github.com/draftly-hq/draftly/internal"
	"github.com/draftly-hq/draftly/internal/archive"
	"github.com/draftly-hq/draftly/internal/pdf"
)

// Server represents the HTTP server over the contract service
type Server struct {
	service draftly.ContractService
	mux     *http.ServeMux

	// health is consulted by /healthz when set
	health func(context.Context) error
}

// NewServer creates a new Server instance
func NewServer(service draftly.ContractService) *Server {
	return &Server{
		service: service,
		mux:     http.NewServeMux(),
	}
}

// RegisterRoutes registers all API routes
func (s *Server) RegisterRoutes() {
	s.mux.HandleFunc("/api/v1/templates", s.templatesHandler)
	s.mux.HandleFunc("/api/v1/templates/", s.templatesHandler)
	s.mux.HandleFunc("/api/v1/contracts", s.contractsHandler)
	s.mux.HandleFunc("/api/v1/contracts/", s.contractsHandler)
	s.mux.HandleFunc("/healthz", s.healthHandler)
}

// Start serves until ctx is cancelled, then drains within the shutdown
// timeout.
func (s *Server) Start(ctx context.Context, cfg draftly.ServerConfig) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withRequestID(s.mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("starting server", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		zap.S().Infow("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	logger, err := newLogger(getEnv("LOG_FORMAT", "json"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		sugar.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := createDatabasePool(ctx, cfg.Database)
	if err != nil {
		sugar.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := internal.EnsureSchema(ctx, pool, cfg.Database.TableNames); err != nil {
		sugar.Fatalf("failed to ensure schema: %v", err)
	}

	templates := internal.NewPostgresTemplateStore(pool, cfg.Database.TableNames.Templates)
	contracts := internal.NewPostgresContractStore(pool, cfg.Database.TableNames.Contracts)

	if err := internal.SeedTemplates(ctx, templates); err != nil {
		sugar.Fatalf("failed to seed templates: %v", err)
	}

	rasterizer := pdf.NewChromeRasterizer(cfg.Render)
	defer rasterizer.Close()

	var archiver draftly.Archiver
	if cfg.Archive.Enabled() {
		uploader, err := archive.NewS3Uploader(ctx, cfg.Archive)
		if err != nil {
			sugar.Fatalf("failed to create archive uploader: %v", err)
		}
		if err := uploader.HealthCheck(ctx, 5*time.Second); err != nil {
			sugar.Warnf("archive endpoint health check failed: %v", err)
		}
		archiver = uploader
	}

	service := internal.NewContractService(templates, contracts, rasterizer, archiver)

	server := NewServer(service)
	server.health = func(ctx context.Context) error {
		return internal.PostgresHealthCheck(ctx, pool, 0)
	}
	server.RegisterRoutes()

	if err := server.Start(ctx, cfg.Server); err != nil && err != http.ErrServerClosed {
		sugar.Fatalf("server error: %v", err)
	}
}

func newLogger(format string) (*zap.Logger, error) {
	if format == "console" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig builds the configuration from environment variables on top of
// the defaults.
func loadConfig() *draftly.Config {
	cfg := draftly.DefaultConfig()

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("DB_NAME", cfg.Database.Database)
	cfg.Database.Username = getEnv("DB_USER", cfg.Database.Username)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", cfg.Database.SSLMode)
	cfg.Database.UseIAMAuth = getEnv("DB_USE_IAM_AUTH", "") == "true"
	cfg.Database.MaxConnections = getEnvInt("DB_MAX_CONNECTIONS", cfg.Database.MaxConnections)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.TableNames.Templates = getEnv("TEMPLATES_TABLE", cfg.Database.TableNames.Templates)
	cfg.Database.TableNames.Contracts = getEnv("CONTRACTS_TABLE", cfg.Database.TableNames.Contracts)

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)

	cfg.Render.DebuggerURL = getEnv("BROWSER_DEBUGGER_URL", cfg.Render.DebuggerURL)
	cfg.Render.BrowserBin = getEnv("BROWSER_BIN", cfg.Render.BrowserBin)
	cfg.Render.Timeout = time.Duration(getEnvInt("RENDER_TIMEOUT_SECONDS", int(cfg.Render.Timeout/time.Second))) * time.Second

	cfg.Archive.Bucket = getEnv("ARCHIVE_BUCKET", cfg.Archive.Bucket)
	cfg.Archive.Region = getEnv("ARCHIVE_REGION", cfg.Archive.Region)
	cfg.Archive.Endpoint = getEnv("ARCHIVE_ENDPOINT", cfg.Archive.Endpoint)
	cfg.Archive.KeyPrefix = getEnv("ARCHIVE_KEY_PREFIX", cfg.Archive.KeyPrefix)

	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	return cfg
}

// createDatabasePool creates a PostgreSQL connection pool from config. With
// IAM auth enabled the password is replaced by a generated DSQL connect
// token.
func createDatabasePool(ctx context.Context, config draftly.DatabaseConfig) (*pgxpool.Pool, error) {
	password := config.Password
	if config.UseIAMAuth {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)
		token, err := auth.GenerateDbConnectAuthToken(ctx, endpoint, awsCfg.Region, awsCfg.Credentials)
		if err != nil {
			zap.S().Warnw("failed to generate IAM auth token, falling back to DB_PASSWORD", "err", err)
		} else if token != "" {
			password = token
			zap.S().Infow("generated IAM auth token for Postgres connection")
		}
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		password,
		config.Host,
		config.Port,
		config.Database,
		config.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(config.MaxConnections)
	poolConfig.MinConns = int32(config.MaxIdleConns)
	poolConfig.MaxConnLifetime = config.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = config.ConnMaxIdleTime
	poolConfig.ConnConfig.ConnectTimeout = config.Timeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
