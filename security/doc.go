// Package security provides the TLS configuration shared by the scene client
// and the mock scene service.
//
// # Client
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/etc/lokan/ca.pem",
//	    CertFile: "/etc/lokan/client.pem",
//	    KeyFile:  "/etc/lokan/client-key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
//
// # Server
//
// BuildServer returns a config that requires client certificates signed by
// CAFile, which is what the mock scene service uses.
package security
