// Command sample demonstrates the endpoint library with a small users
// service written endpoint-first: every operation is a value implementing
// endpoint.Endpoint over a shared Env, and the OpenAPI document is projected
// from the same values.
//
// Run:
//
//	go run ./cmd/sample
//
// Generate the OpenAPI document:
//
//	go run ./cmd/sample -spec                 — print to stdout
//	go run ./cmd/sample -spec -o openapi.json — write to file
//
// Then explore:
//
//	GET    http://localhost:8080/openapi.json
//	GET    http://localhost:8080/docs
//	GET    http://localhost:8080/v1/users
//	POST   http://localhost:8080/v1/users
//	GET    http://localhost:8080/v1/users/{id}
//	PUT    http://localhost:8080/v1/users/{id}
//	DELETE http://localhost:8080/v1/users/{id}
//
// Configuration comes from the environment (a .env file is honored):
// ADDR, DATABASE_URL (postgres pool; in-memory store when unset), LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/bjaus/endpoint"
)

// Config holds the static process configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	LogLevel    slog.Level
}

// Env is the shared environment handed to every Handle call. It is built
// once at startup and read-only afterwards; the pool manages its own
// concurrency.
type Env struct {
	Config Config
	Pool   *pgxpool.Pool
	Store  Store
}

func loadConfig() Config {
	// Missing .env is fine — plain environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		Addr:     ":8080",
		LogLevel: slog.LevelInfo,
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
			cfg.LogLevel = slog.LevelInfo
		}
	}
	return cfg
}

func main() {
	specFlag := flag.Bool("spec", false, "Print the OpenAPI document to stdout and exit")
	outFlag := flag.String("o", "", "Output file for the document (requires -spec)")
	flag.Parse()

	cfg := loadConfig()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env, err := newEnv(ctx, cfg)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer env.close()

	r := newRouter(env, logger)

	if *specFlag {
		if err := writeSpec(r, *outFlag); err != nil {
			logger.Error("spec generation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting server", "addr", cfg.Addr, "store", env.storeKind())

	if err := r.ListenAndServe(ctx, cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}

	logger.Info("server stopped")
}

func newEnv(ctx context.Context, cfg Config) (*Env, error) {
	env := &Env{Config: cfg}

	if cfg.DatabaseURL == "" {
		env.Store = newMemStore()
		return env, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	env.Pool = pool
	env.Store = &pgxStore{pool: pool}
	return env, nil
}

func (e *Env) close() {
	if e.Pool != nil {
		e.Pool.Close()
	}
}

func (e *Env) storeKind() string {
	if e.Pool != nil {
		return "postgres"
	}
	return "memory"
}

func newRouter(env *Env, logger *slog.Logger) *endpoint.Router {
	r := endpoint.New(
		endpoint.WithTitle("Users API"),
		endpoint.WithVersion("1.0.0"),
		endpoint.WithDescription("Sample users service built on the endpoint library."),
		endpoint.WithValidator(&structValidator{v: validator.New()}),
	)

	r.Use(endpoint.Recovery())
	r.Use(endpoint.RequestID())
	r.Use(endpoint.Logger(logger))
	r.Use(endpoint.CORS())
	r.Use(endpoint.RateLimit(endpoint.RateLimitConfig{Rate: 50, Burst: 100}))
	r.Use(endpoint.Timeout(15 * time.Second))
	r.Use(endpoint.Inject(env))

	r.ServeSpec("/openapi.json")
	r.ServeSpecYAML("/openapi.yaml")
	r.ServeDocs("/docs")

	v1 := r.Group("/v1")

	endpoint.Mount(v1, ListUsers{})
	endpoint.Mount(v1, CreateUser{}, endpoint.WithStatus(http.StatusCreated))
	endpoint.Mount(v1, GetUser{})
	endpoint.Mount(v1, UpdateUser{})
	endpoint.Mount(v1, DeleteUser{})

	return r
}

func writeSpec(r *endpoint.Router, out string) error {
	if out == "" {
		return r.WriteSpec(os.Stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(out, ".yaml") || strings.HasSuffix(out, ".yml") {
		return r.WriteSpecYAML(f)
	}
	return r.WriteSpec(f)
}

// structValidator adapts go-playground/validator to the library's Validator
// seam. Non-struct requests pass through.
type structValidator struct {
	v *validator.Validate
}

func (s *structValidator) Validate(req any) error {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if err := s.v.Struct(req); err != nil {
		return endpoint.Error(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
