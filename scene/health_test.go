package scene

import (
	"context"
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     string
		wantCode Code
	}{
		{"healthy", `{"status":"healthy"}`, "healthy", CodeOK},
		{"with service", `{"status":"ok","service":"scene-svc"}`, "ok", CodeOK},
		{"missing field", `{"other":"x"}`, "", CodeParseError},
		{"empty value", `{"status":}`, "", CodeParseError},
		{"empty body", ``, "", CodeParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, "/scene-svc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/scene-svc/health" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))

			got, err := c.Health(context.Background())
			if tt.wantCode != CodeOK {
				assertCode(t, err, tt.wantCode)
				if got != "" {
					t.Errorf("status = %q on error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Health() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHealth_HTTPError(t *testing.T) {
	c, _ := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"down"}`))
	}))

	got, err := c.Health(context.Background())
	assertCode(t, err, CodeHTTPError)
	if got != "" {
		t.Errorf("status = %q, body must not be parsed on HTTP errors", got)
	}
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", StatusCode(err))
	}
}
