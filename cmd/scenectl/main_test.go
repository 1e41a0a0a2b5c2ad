package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/lokanhome/lokan-go/config"
	"github.com/lokanhome/lokan-go/mockscene"
	"github.com/lokanhome/lokan-go/security/tlstest"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BASE_URL", "CLIENT_CERT", "CLIENT_KEY", "CA_CERT", "TIMEOUT_MS", "OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_INSECURE"} {
		t.Setenv(config.SDKEnvPrefix+k, "")
		os.Unsetenv(config.SDKEnvPrefix + k)
	}
}

func setTLSEnv(t *testing.T, baseURL string, certs *tlstest.TLSCerts) {
	t.Helper()
	t.Setenv("LOKAN_SDK_BASE_URL", baseURL)
	t.Setenv("LOKAN_SDK_CLIENT_CERT", certs.ClientCertFile)
	t.Setenv("LOKAN_SDK_CLIENT_KEY", certs.ClientKeyFile)
	t.Setenv("LOKAN_SDK_CA_CERT", certs.CAFile)
}

// startMock serves a mock scene service over mTLS and points the SDK
// environment at it.
func startMock(t *testing.T) *mockscene.Handler {
	t.Helper()
	clearEnv(t)
	h := mockscene.NewHandler(mockscene.Options{Prefix: "/scene-svc"})
	srv, certs := tlstest.NewMTLSServer(t, h)
	setTLSEnv(t, srv.URL+"/scene-svc", certs)
	return h
}

func execute(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestHealth(t *testing.T) {
	startMock(t)

	code, out, errOut := execute("health")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if out != "Scene service health: ok\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestHealth_TelemetryEnabled(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	startMock(t)
	t.Setenv("LOKAN_SDK_OTEL_ENABLED", "true")
	t.Setenv("LOKAN_SDK_OTEL_ENDPOINT", "127.0.0.1:1")
	t.Setenv("LOKAN_SDK_OTEL_INSECURE", "true")

	code, out, errOut := execute("health")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if out != "Scene service health: ok\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		wantBody string
		wantOut  string
	}{
		{
			name:     "scene ID",
			args:     func(*testing.T) []string { return []string{"apply", "evening"} },
			wantBody: `{"sceneId":"evening"}`,
			wantOut:  "Scene evening applied\n",
		},
		{
			name:     "payload",
			args:     func(*testing.T) []string { return []string{"apply", "--payload", `{"sceneId":"x","fade":3}`} },
			wantBody: `{"sceneId":"x","fade":3}`,
			wantOut:  "Scene payload applied\n",
		},
		{
			name: "payload file",
			args: func(t *testing.T) []string {
				path := filepath.Join(t.TempDir(), "scene.json")
				if err := os.WriteFile(path, []byte(`{"sceneId":"file"}`), 0o600); err != nil {
					t.Fatal(err)
				}
				return []string{"apply", "--payload-file", path}
			},
			wantBody: `{"sceneId":"file"}`,
			wantOut:  "Scene payload applied\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := startMock(t)

			code, out, errOut := execute(tt.args(t)...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if got := string(h.LastApplyBody()); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestApplyOperations(t *testing.T) {
	h := startMock(t)

	code, out, errOut := execute("apply", "night", "--op", `lamp-1={"on":false}`, "--op", `lock-1={"locked":true}`)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	for _, want := range []string{"Scene status: applied", "lamp-1: applied", "lock-1: applied"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(string(h.LastApplyBody()), `"operations"`) {
		t.Errorf("body = %s", h.LastApplyBody())
	}
}

func TestFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		args    []string
		wantErr string
	}{
		{
			name:    "missing TLS configuration",
			setup:   clearEnv,
			args:    []string{"health"},
			wantErr: "Missing TLS configuration",
		},
		{
			name:    "apply without scene or payload",
			setup:   func(t *testing.T) { startMock(t) },
			args:    []string{"apply"},
			wantErr: "a scene ID or a payload is required",
		},
		{
			name:    "bad operation",
			setup:   func(t *testing.T) { startMock(t) },
			args:    []string{"apply", "--op", "lamp-1={"},
			wantErr: "state is not valid JSON",
		},
		{
			name: "http error",
			setup: func(t *testing.T) {
				clearEnv(t)
				srv, certs := tlstest.NewMTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
				}))
				setTLSEnv(t, srv.URL, certs)
			},
			args:    []string{"health"},
			wantErr: "http error",
		},
		{
			name: "unreachable service",
			setup: func(t *testing.T) {
				clearEnv(t)
				setTLSEnv(t, "https://127.0.0.1:1", tlstest.GenerateTLSCerts(t))
			},
			args:    []string{"--timeout-ms", "500", "health"},
			wantErr: "transport error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			code, out, errOut := execute(tt.args...)
			if code == 0 {
				t.Fatalf("exit code = 0, stdout = %s", out)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantErr, errOut)
			}
		})
	}
}

func TestBaseURLFlag(t *testing.T) {
	clearEnv(t)
	h := mockscene.NewHandler(mockscene.Options{Prefix: "/other"})
	srv, certs := tlstest.NewMTLSServer(t, h)
	setTLSEnv(t, "https://127.0.0.1:1/wrong", certs)

	code, out, errOut := execute("--base-url", srv.URL+"/other", "health")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("stdout = %q", out)
	}
}

func TestVersion(t *testing.T) {
	clearEnv(t)

	code, out, _ := execute("version", "--short")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("empty version output")
	}
}
