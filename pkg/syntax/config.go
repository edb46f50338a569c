package syntax

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxDepth bounds recursive-descent nesting when no Config is given.
const DefaultMaxDepth = 256

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the settings shared by Lex and Parse.
type Config struct {
	// MaxDepth is the deepest nesting of parenthesised groups, ternaries and
	// prefix operators the parser accepts before failing with
	// ErrMaxNestingDepth.
	MaxDepth int `validate:"gte=1,lte=100000"`

	// logger receives debug records. Nil means discard.
	logger *slog.Logger
}

// DefaultConfig returns a Config with DefaultMaxDepth and no logger.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// SetMaxDepth sets the nesting limit.
func (c *Config) SetMaxDepth(depth int) {
	c.MaxDepth = depth
}

// SetLogger sets the logger.
func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Logger returns the configured logger, or one that discards everything.
func (c Config) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return c.logger
}

// Validate reports whether the Config can be used.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid parser config: %w", err)
	}
	return nil
}
