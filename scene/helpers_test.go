package scene

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lokanhome/lokan-go/security/tlstest"
)

// newTestClient starts an mTLS server for handler and returns a client whose
// base URL is the server URL plus basePath.
func newTestClient(t *testing.T, basePath string, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv, certs := tlstest.NewMTLSServer(t, handler)

	c, err := New(&Config{
		BaseURL:        srv.URL + basePath,
		ClientCertFile: certs.ClientCertFile,
		ClientKeyFile:  certs.ClientKeyFile,
		CAFile:         certs.CAFile,
	}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func assertCode(t *testing.T, err error, want Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", want)
	}
	if got := CodeOf(err); got != want {
		t.Fatalf("CodeOf(err) = %q, want %q (err: %v)", got, want, err)
	}
}
