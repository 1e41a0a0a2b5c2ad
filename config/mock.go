package config

import (
	"fmt"

	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/security"
)

const (
	// MockEnvPrefix is the prefix of the mock service environment variables.
	MockEnvPrefix = "LOKAN_"

	DefaultMockBind   = "0.0.0.0:9443"
	DefaultMockPrefix = "/scene-svc"

	mockName = "scene-mock"
)

// MockConfig is the configuration of the mock scene service.
//
//	LOKAN_BIND         listen address
//	LOKAN_SERVER_CERT  server certificate (PEM)
//	LOKAN_SERVER_KEY   server private key (PEM)
//	LOKAN_CA_CERT      CA that client certificates must chain to
//	LOKAN_MOCK_PREFIX  route prefix
type MockConfig struct {
	Bind       string `yaml:"bind" mapstructure:"bind" validate:"required,hostname_port"`
	ServerCert string `yaml:"server_cert" mapstructure:"server_cert" validate:"required"`
	ServerKey  string `yaml:"server_key" mapstructure:"server_key" validate:"required"`
	CACert     string `yaml:"ca_cert" mapstructure:"ca_cert" validate:"required"`
	Prefix     string `yaml:"mock_prefix" mapstructure:"mock_prefix" validate:"omitempty,startswith=/"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields.
func (c *MockConfig) ApplyDefaults() {
	if c.Bind == "" {
		c.Bind = DefaultMockBind
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = mockName
	}
	c.Logging.ApplyDefaults()
}

// Validate checks required fields and formats.
func (c *MockConfig) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// TLS returns the server TLS settings.
func (c *MockConfig) TLS() *security.TLSConfig {
	return &security.TLSConfig{
		CAFile:   c.CACert,
		CertFile: c.ServerCert,
		KeyFile:  c.ServerKey,
	}
}

// LoadMockConfig loads, defaults and validates the mock service configuration.
func LoadMockConfig(opts ...LoaderOption) (*MockConfig, error) {
	cfg := &MockConfig{}
	base := []LoaderOption{
		WithEnvPrefix(MockEnvPrefix),
		WithDefaults(map[string]any{
			"bind":        DefaultMockBind,
			"mock_prefix": DefaultMockPrefix,
		}),
	}
	if err := LoadConfig(mockName, cfg, append(base, opts...)...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
