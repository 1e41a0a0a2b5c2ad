package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds the file-based TLS settings shared by the scene client and
// the mock scene service.
//
// Certificate verification cannot be disabled through this type: peer and
// host name checks are always performed by crypto/tls.
type TLSConfig struct {
	// CAFile is the path to the CA bundle used to verify the peer.
	// When empty the system roots are used.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to the local certificate (client cert for mTLS).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the path to the private key matching CertFile.
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the host name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is the minimum TLS version. Values below TLS 1.2 are raised
	// to TLS 1.2.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// Build creates a client-side *tls.Config. A nil receiver yields a config
// that verifies against the system roots with TLS 1.2 as the floor.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if c == nil {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		ServerName: c.ServerName,
		MinVersion: c.minVersion(),
	}

	pool, err := c.loadCA()
	if err != nil {
		return nil, err
	}
	cfg.RootCAs = pool

	cert, err := c.loadKeyPair()
	if err != nil {
		return nil, err
	}
	if cert != nil {
		cfg.Certificates = []tls.Certificate{*cert}
	}

	return cfg, nil
}

// BuildServer creates a server-side *tls.Config that requires and verifies
// client certificates against CAFile.
func (c *TLSConfig) BuildServer() (*tls.Config, error) {
	if !c.HasClientCert() {
		return nil, fmt.Errorf("security/tls: server certificate and key are required")
	}
	if c.CAFile == "" {
		return nil, fmt.Errorf("security/tls: client CA file is required")
	}

	cert, err := c.loadKeyPair()
	if err != nil {
		return nil, err
	}
	pool, err := c.loadCA()
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{*cert},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   c.minVersion(),
	}, nil
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	// If one of cert/key is set, both must be set
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	return nil
}

// HasClientCert reports whether a key pair is configured. For BuildServer
// the pair is the server's own certificate.
func (c *TLSConfig) HasClientCert() bool {
	return c != nil && c.CertFile != "" && c.KeyFile != ""
}

func (c *TLSConfig) minVersion() uint16 {
	if c.MinVersion < tls.VersionTLS12 {
		return tls.VersionTLS12
	}
	return c.MinVersion
}

// loadCA reads CAFile into a pool. Returns nil (system roots) when unset.
func (c *TLSConfig) loadCA() (*x509.CertPool, error) {
	if c.CAFile == "" {
		return nil, nil
	}
	ca, err := os.ReadFile(c.CAFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	return pool, nil
}

func (c *TLSConfig) loadKeyPair() (*tls.Certificate, error) {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: failed to load certificate: %w", err)
	}
	return &cert, nil
}
