package mockscene

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lokanhome/lokan-go/logger"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(recovery(logger.Nop()), requestID())
	e.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(e, http.MethodGet, "/panic", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestRequestID_Echo(t *testing.T) {
	h := NewHandler(Options{})
	req := newRequest(http.MethodGet, "/health")
	req.Header.Set(headerRequestID, "abc-123")

	w := record(h, req)
	if got := w.Header().Get(headerRequestID); got != "abc-123" {
		t.Errorf("X-Request-Id = %q", got)
	}
}

func TestRequestLogger_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "scene-mock", &buf)
	h := NewHandler(Options{Logger: log})

	req := newRequest(http.MethodGet, "/missing")
	req.Header.Set(headerRequestID, "req-42")
	record(h, req)

	out := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"status_code":404`, `"component":"mockscene"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
