package progcache

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/clforge/cache"
	"github.com/jonwraymond/clforge/codegen"
	"github.com/jonwraymond/clforge/scheduler"
)

// Config holds the service configuration.
type Config struct {
	// Template is the kernel source template the rendered random-math
	// block is spliced into. Supplied by the embedding application, never
	// by environment.
	Template string

	// Marker is the token in Template that the rendered block replaces.
	// Default: codegen.DefaultMarker.
	Marker string `env:"CLFORGE_SOURCE_MARKER" envDefault:"CLFORGE_INCLUDE_RANDOM_MATH"`

	// PrecompileDepth is the retention window: a cached program is evicted
	// once a build for the same variant runs at a height more than this
	// many past it. Default: 3.
	PrecompileDepth uint64 `env:"CLFORGE_PRECOMPILE_DEPTH" envDefault:"3"`

	// PollInterval is the background worker's drain cadence.
	// Default: 500ms.
	PollInterval time.Duration `env:"CLFORGE_POLL_INTERVAL" envDefault:"500ms"`
}

// DefaultConfig returns the built-in defaults. Template is left empty; the
// embedding application supplies its own kernel source.
func DefaultConfig() Config {
	return Config{
		Marker:          codegen.DefaultMarker,
		PrecompileDepth: cache.DefaultDepth,
		PollInterval:    scheduler.DefaultInterval,
	}
}

// ConfigFromEnv builds a Config from CLFORGE_* environment variables,
// falling back to the defaults for anything unset.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("progcache: parse env config: %w", err)
	}
	return cfg, nil
}
