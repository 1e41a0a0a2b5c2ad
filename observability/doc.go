// Package observability wires OpenTelemetry tracing and metrics.
//
// The scene client always records spans and request metrics against the
// global otel providers, which are no-ops until a tool calls Setup (or
// InitTracer / InitMeter) with an OTLP HTTP endpoint.
//
//	shutdown, err := observability.Setup(ctx, "scenectl", version.Version, cfg.OTel)
//	if err != nil { ... }
//	defer shutdown(context.Background())
package observability
