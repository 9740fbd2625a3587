package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/google/uuid"
)

// Config holds the configuration settings for the HTTP server.
type Config struct {
	// AppName is the name of the application.
	AppName string `mapstructure:"app_name"`

	// Addr is the address the server will bind to.
	Addr string `mapstructure:"addr"`

	// Port is the TCP port on which the server will listen.
	Port int `mapstructure:"port"`

	// AdminBearerToken is the token required to access the finalize route.
	AdminBearerToken string `mapstructure:"admin_bearer_token"`
}

// DefaultConfig provides a default configuration with reasonable values for
// local development.
var DefaultConfig = Config{
	AppName:          "UTXO Ledger API v0.1.0",
	Addr:             "localhost",
	Port:             3000,
	AdminBearerToken: uuid.NewString(),
}

// Option defines a functional option for configuring an HTTP server.
type Option func(*HTTP)

// WithConfig sets the HTTP server configuration based on the given
// definition.
func WithConfig(cfg Config) Option {
	return func(h *HTTP) {
		h.cfg = cfg
	}
}

// WithMiddleware adds a Fiber middleware handler to the HTTP server
// configuration. The execution order depends on the sequence in which the
// middlewares are passed.
func WithMiddleware(f fiber.Handler) Option {
	return func(h *HTTP) {
		h.middleware = append(h.middleware, f)
	}
}

// WithEngine sets the ledger engine provider driven by the HTTP handlers.
func WithEngine(provider app.LedgerProvider) Option {
	return func(h *HTTP) {
		h.provider = provider
	}
}

// WithStandingAuthorities sets the configured authority fallback for
// finalize requests that carry no keys of their own.
func WithStandingAuthorities(keys []ledger.PubKey) Option {
	return func(h *HTTP) {
		h.standing = keys
	}
}

// HTTP manages connections to the ledger node. It accepts and responds to
// client sockets, using idempotency to mitigate duplicated requests.
type HTTP struct {
	app        *fiber.App
	cfg        Config
	middleware []fiber.Handler
	provider   app.LedgerProvider
	standing   []ledger.PubKey
}

// New returns an instance of the HTTP server and applies all specified
// functional options before starting it.
func New(opts ...Option) *HTTP {
	h := &HTTP{
		cfg:        DefaultConfig,
		middleware: []fiber.Handler{idempotency.New()},
	}
	for _, o := range opts {
		o(h)
	}
	h.app = fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  "UTXO Ledger API",
		AppName:       h.cfg.AppName,
	})
	for _, m := range h.middleware {
		h.app.Use(m)
	}

	ledgerAPI := app.New(h.provider, h.standing)

	// Routes:
	api := h.app.Group("/api")
	v1 := api.Group("/v1")

	v1.Post("/submit", ledgerAPI.Commands.SubmitTransactionHandler.Handle)
	v1.Get("/outputs/:id", ledgerAPI.Queries.OutputHandler.Handle)
	v1.Get("/reward-pool", ledgerAPI.Queries.RewardPoolHandler.Handle)

	admin := v1.Group("/admin", AdminAuth(h.cfg.AdminBearerToken))
	admin.Post("/finalize", ledgerAPI.Commands.FinalizeBlockHandler.Handle)

	return h
}

// App exposes the underlying fiber application, mainly for tests.
func (h *HTTP) App() *fiber.App { return h.app }

// SocketAddr returns the socket address string based on the configured
// address and port combination.
func (h *HTTP) SocketAddr() string { return fmt.Sprintf("%s:%d", h.cfg.Addr, h.cfg.Port) }

// ListenAndServe handles HTTP requests from the configured socket address.
func (h *HTTP) ListenAndServe() error {
	if err := h.app.Listen(h.SocketAddr()); err != nil {
		return fmt.Errorf("http server: fiber app listen failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server without interrupting any active
// connections, honoring the given context deadline.
func (h *HTTP) Shutdown(ctx context.Context) error {
	if err := h.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("http server: fiber app shutdown failed: %w", err)
	}
	return nil
}

// AdminAuth is a middleware that checks the Authorization header for a
// valid Bearer token. It protects the finalize route from unauthorized
// access.
func AdminAuth(expectedToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.NewErrorResponse("missing Authorization header in the request"))
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.NewErrorResponse("missing Authorization header Bearer token value"))
		}
		if strings.TrimPrefix(auth, "Bearer ") != expectedToken {
			return c.Status(fiber.StatusForbidden).
				JSON(dto.NewErrorResponse("invalid Bearer token value"))
		}
		return c.Next()
	}
}
