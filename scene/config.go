package scene

import (
	"time"

	"github.com/lokanhome/lokan-go/security"
)

const (
	// DefaultTimeoutMs is applied when Config.TimeoutMs is zero or negative.
	DefaultTimeoutMs = 5000
	// DefaultMaxResponseBytes bounds the buffered response body.
	DefaultMaxResponseBytes = 16 << 20
)

// Config holds the connection settings of a Client. It is copied by New and
// never modified afterwards.
type Config struct {
	// BaseURL is the root address of the scene service, e.g.
	// "https://localhost:9443/scene-svc". Required.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// ClientCertFile and ClientKeyFile are the client identity for mTLS.
	ClientCertFile string `yaml:"client_cert" mapstructure:"client_cert"`
	ClientKeyFile  string `yaml:"client_key" mapstructure:"client_key"`

	// CAFile is the CA bundle used to verify the service. Empty means the
	// system roots.
	CAFile string `yaml:"ca_cert" mapstructure:"ca_cert"`

	// TimeoutMs bounds each request. Defaults to 5000 when not positive.
	TimeoutMs int64 `yaml:"timeout_ms" mapstructure:"timeout_ms"`

	// MaxResponseBytes bounds the buffered response body. Defaults to 16 MiB
	// when not positive.
	MaxResponseBytes int64 `yaml:"max_response_bytes" mapstructure:"max_response_bytes"`
}

// ApplyDefaults fills in non-positive limits.
func (c *Config) ApplyDefaults() {
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = DefaultMaxResponseBytes
	}
}

// Timeout returns TimeoutMs as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c *Config) tlsConfig() *security.TLSConfig {
	return &security.TLSConfig{
		CAFile:   c.CAFile,
		CertFile: c.ClientCertFile,
		KeyFile:  c.ClientKeyFile,
	}
}
