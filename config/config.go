package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/finch-cp/finch/order"
)

// Config carries the solver's configuration.
type Config struct {
	// Logger receives structured search events. Per-step propagation and
	// backtracking events are emitted at Debug level, so the handler's
	// level decides whether they are kept.
	Logger *slog.Logger
	// Order selects the variable ordering strategy used during search.
	Order order.Strategy
	// MaxSolutions caps enumeration; zero means exhaust the search space.
	MaxSolutions uint
}

// New returns a config with default settings: declaration-order variable
// selection, unbounded enumeration, and a discarded log stream.
func New() *Config {
	return &Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Order:  order.InDeclarationOrder,
	}
}

// NewVerbose returns a config that logs search events to stderr.
func NewVerbose() *Config {
	c := New()
	c.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return c
}
