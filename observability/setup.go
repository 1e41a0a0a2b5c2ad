package observability

import (
	"context"
	"errors"
	"time"
)

// Config is the otel section of the tool configuration.
type Config struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure    bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate  float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
}

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(ctx context.Context) error

// Setup installs global tracer and meter providers exporting over OTLP HTTP.
// When cfg.Enabled is false nothing is installed and the otel no-op
// providers stay in place.
func Setup(ctx context.Context, serviceName, serviceVersion string, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tcfg := DefaultTracerConfig(serviceName)
	mcfg := DefaultMeterConfig(serviceName)
	tcfg.ServiceVersion, mcfg.ServiceVersion = serviceVersion, serviceVersion
	if cfg.Endpoint != "" {
		tcfg.Endpoint, mcfg.Endpoint = cfg.Endpoint, cfg.Endpoint
	}
	if cfg.Environment != "" {
		tcfg.Environment, mcfg.Environment = cfg.Environment, cfg.Environment
	}
	tcfg.Insecure, mcfg.Insecure = cfg.Insecure, cfg.Insecure
	if cfg.SampleRate > 0 {
		tcfg.SampleRate = cfg.SampleRate
	}
	if cfg.Interval > 0 {
		mcfg.Interval = cfg.Interval
	}

	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
