package docite

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// WithEngine sets the pandoc engine, usually the result of EnsureEngine.
// Without it the converter runs "pandoc" from PATH.
func WithEngine(e *Engine) Option {
	return func(c *Converter) {
		c.engine = e
	}
}

// WithRunner replaces the command runner (tests use a fake).
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each pandoc run. Zero (the default) means no timeout.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("docite: WithTimeout duration must not be negative")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithAssetLoader sets where bundled style names are loaded from.
func WithAssetLoader(l StyleLoader) Option {
	return func(c *Converter) {
		c.styles.Loader = l
	}
}

// WithStyleCacheDir sets the directory bundled styles are written to.
func WithStyleCacheDir(dir string) Option {
	return func(c *Converter) {
		c.styles.CacheDir = dir
	}
}

// WithFrontMatterShape overrides the metadata block shape the stripper expects.
func WithFrontMatterShape(s FrontMatterShape) Option {
	return func(c *Converter) {
		c.shape = s
	}
}
