package mockscene

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/lokanhome/lokan-go/config"
	"github.com/lokanhome/lokan-go/scene"
	"github.com/lokanhome/lokan-go/security/tlstest"
)

func startServer(t *testing.T) (*Server, *tlstest.TLSCerts) {
	t.Helper()
	certs := tlstest.GenerateTLSCerts(t)

	srv, err := NewServer(&config.MockConfig{
		Bind:       "127.0.0.1:0",
		ServerCert: certs.CertFile,
		ServerKey:  certs.KeyFile,
		CACert:     certs.CAFile,
		Prefix:     "/scene-svc",
	}, nil)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })
	return srv, certs
}

func TestServer_WithSceneClient(t *testing.T) {
	srv, certs := startServer(t)

	client, err := scene.New(&scene.Config{
		BaseURL:        "https://" + srv.Addr() + "/scene-svc",
		ClientCertFile: certs.ClientCertFile,
		ClientKeyFile:  certs.ClientKeyFile,
		CAFile:         certs.CAFile,
		TimeoutMs:      2000,
	})
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	status, err := client.Health(ctx)
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if status != "ok" {
		t.Errorf("Health() = %q", status)
	}

	if err := client.ApplyScene(ctx, "evening"); err != nil {
		t.Fatalf("ApplyScene() error = %v", err)
	}
	if got := string(srv.Handler().LastApplyBody()); got != `{"sceneId":"evening"}` {
		t.Errorf("LastApplyBody = %q", got)
	}

	resp, err := client.ApplyOperations(ctx, scene.SceneRequest{
		SceneID:    "evening",
		Operations: []scene.DeviceOperation{{DeviceID: "lamp-1", State: []byte(`{"on":true}`)}},
	})
	if err != nil {
		t.Fatalf("ApplyOperations() error = %v", err)
	}
	if resp.Status != scene.SceneApplied {
		t.Errorf("Status = %q", resp.Status)
	}
}

func TestServer_RejectsClientWithoutCert(t *testing.T) {
	srv, certs := startServer(t)

	client, err := scene.New(&scene.Config{
		BaseURL: "https://" + srv.Addr() + "/scene-svc",
		CAFile:  certs.CAFile,
	})
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	defer client.Close()

	_, err = client.Health(context.Background())
	if !scene.IsTransportError(err) {
		t.Errorf("Health() error = %v, want transport error", err)
	}
}

func TestNewServer_MissingTLS(t *testing.T) {
	_, err := NewServer(&config.MockConfig{Bind: "127.0.0.1:0"}, nil)
	if err == nil {
		t.Fatal("expected error without TLS material")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, &config.MockConfig{
			Bind:       "127.0.0.1:0",
			ServerCert: certs.CertFile,
			ServerKey:  certs.KeyFile,
			CACert:     certs.CAFile,
		}, nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServerTLSConfig(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)

	cfg, err := ServerTLSConfig(certs.CertFile, certs.KeyFile, certs.CAFile)
	if err != nil {
		t.Fatalf("ServerTLSConfig() error = %v", err)
	}
	if cfg.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("ClientAuth = %v", cfg.ClientAuth)
	}
	if len(cfg.Certificates) != 1 || cfg.ClientCAs == nil {
		t.Error("expected server certificate and client CA pool")
	}

	if _, err := ServerTLSConfig(certs.CertFile, "", certs.CAFile); err == nil {
		t.Error("expected error without server key")
	}
}
