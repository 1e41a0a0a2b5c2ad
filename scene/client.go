package scene

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/observability"
	"github.com/lokanhome/lokan-go/version"
)

const opNew = "new"

// Client talks to one scene service. It is not safe for concurrent use.
type Client struct {
	cfg        Config
	transport  *http.Transport
	httpClient *http.Client
	tlsReady   bool
	closed     bool

	log       *logger.Logger
	userAgent string
	tracer    trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.WithComponent(logger.ComponentClient)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTracerProvider sets the provider the request spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(observability.DefaultTracerName)
		}
	}
}

// New creates a Client for cfg. The config is copied; non-positive limits are
// replaced by their defaults. TLS material is not read until the first
// request, so a missing certificate file surfaces as a transport error there.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, newError(CodeInvalidArgument, opNew, "config is required", nil)
	}
	if cfg.BaseURL == "" {
		return nil, newError(CodeInvalidArgument, opNew, "base URL is required", nil)
	}
	if err := initGlobal(); err != nil {
		return nil, newError(CodeTransportError, opNew, "global initialization failed", err)
	}

	c := &Client{
		cfg:       *cfg,
		log:       logger.Nop(),
		userAgent: version.UserAgent(),
		tracer:    observability.Tracer(observability.DefaultTracerName),
	}
	c.cfg.ApplyDefaults()

	for _, opt := range opts {
		opt(c)
	}

	c.transport = baseTransport.Clone()
	c.httpClient = &http.Client{
		Transport: c.transport,
		Timeout:   c.cfg.Timeout(),
		// 3xx responses are returned, not followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	c.log.Debug("scene client created", logger.Fields(
		logger.FieldURL, c.cfg.BaseURL,
		"timeout_ms", c.cfg.TimeoutMs,
	))
	return c, nil
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases the connections held by the client. It is safe to call on a
// nil Client and more than once. Requests on a closed client fail with
// CodeInvalidArgument.
func (c *Client) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.log.Debug("scene client closed")
	return nil
}

// ensureTLS builds the TLS configuration on first use. A failure leaves the
// client untouched so the next request tries again.
func (c *Client) ensureTLS() error {
	if c.tlsReady {
		return nil
	}
	tlsCfg, err := c.cfg.tlsConfig().Build()
	if err != nil {
		return err
	}
	c.transport.TLSClientConfig = tlsCfg
	c.tlsReady = true
	return nil
}
