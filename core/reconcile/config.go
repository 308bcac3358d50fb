package reconcile

import "go.uber.org/zap"

// Config holds engine settings loaded from the environment.
type Config struct {
	// SVGTag is the element tag that switches children into the SVG namespace.
	SVGTag string `mapstructure:"svg_tag" default:"svg"`
	// LogPasses registers a LogDriver that reports every top-level pass.
	LogPasses bool `mapstructure:"log_passes" default:"true"`
	// LogNested also reports nested calls at debug level.
	LogNested bool `mapstructure:"log_nested" default:"false"`
	// BatchSize splits replay into batches of at most this many effects.
	// Zero replays everything at once.
	BatchSize int `mapstructure:"batch_size" default:"0"`
}

// Options translates the configuration into engine options.
func (c Config) Options(l *zap.Logger) []Option {
	opts := []Option{WithLogger(l), WithSVGTag(c.SVGTag)}
	if c.LogPasses {
		opts = append(opts, WithDrivers(NewLogDriver(l, c.LogNested)))
	}
	return opts
}
