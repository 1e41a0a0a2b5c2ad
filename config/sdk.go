package config

import (
	"errors"
	"fmt"

	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/observability"
	"github.com/lokanhome/lokan-go/scene"
)

const (
	// SDKEnvPrefix is the prefix of the SDK environment variables.
	SDKEnvPrefix = "LOKAN_SDK_"
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://localhost:9443/scene-svc"

	sdkName = "scenectl"
)

// ErrMissingTLS is returned by RequireTLS when any of the client certificate,
// key or CA paths is unset.
var ErrMissingTLS = errors.New("missing TLS configuration")

// SDKConfig is the configuration of a scene client tool.
//
//	LOKAN_SDK_BASE_URL     base URL of the scene service
//	LOKAN_SDK_CLIENT_CERT  client certificate (PEM)
//	LOKAN_SDK_CLIENT_KEY   client private key (PEM)
//	LOKAN_SDK_CA_CERT      CA bundle (PEM)
//	LOKAN_SDK_TIMEOUT_MS   request timeout in milliseconds
type SDKConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	ClientCert       string `yaml:"client_cert" mapstructure:"client_cert" validate:"required_with=ClientKey"`
	ClientKey        string `yaml:"client_key" mapstructure:"client_key" validate:"required_with=ClientCert"`
	CACert           string `yaml:"ca_cert" mapstructure:"ca_cert"`
	TimeoutMs        int64  `yaml:"timeout_ms" mapstructure:"timeout_ms" validate:"gte=0"`
	MaxResponseBytes int64  `yaml:"max_response_bytes" mapstructure:"max_response_bytes" validate:"gte=0"`

	Logging logger.Config        `yaml:"logging" mapstructure:"logging"`
	OTel    observability.Config `yaml:"otel" mapstructure:"otel"`
}

// ApplyDefaults fills unset fields.
func (c *SDKConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = scene.DefaultTimeoutMs
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = sdkName
	}
	c.Logging.ApplyDefaults()
}

// Validate checks field formats. TLS paths are optional here; see RequireTLS.
func (c *SDKConfig) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// RequireTLS returns ErrMissingTLS unless the certificate, key and CA paths
// are all set.
func (c *SDKConfig) RequireTLS() error {
	if c.ClientCert == "" || c.ClientKey == "" || c.CACert == "" {
		return ErrMissingTLS
	}
	return nil
}

// SceneConfig converts c into a client configuration.
func (c *SDKConfig) SceneConfig() *scene.Config {
	return &scene.Config{
		BaseURL:          c.BaseURL,
		ClientCertFile:   c.ClientCert,
		ClientKeyFile:    c.ClientKey,
		CAFile:           c.CACert,
		TimeoutMs:        c.TimeoutMs,
		MaxResponseBytes: c.MaxResponseBytes,
	}
}

// LoadSDKConfig loads, defaults and validates the SDK configuration.
func LoadSDKConfig(opts ...LoaderOption) (*SDKConfig, error) {
	cfg := &SDKConfig{}
	base := []LoaderOption{
		WithEnvPrefix(SDKEnvPrefix),
		WithDefaults(map[string]any{
			"base_url":   DefaultBaseURL,
			"timeout_ms": scene.DefaultTimeoutMs,
		}),
	}
	if err := LoadConfig(sdkName, cfg, append(base, opts...)...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
