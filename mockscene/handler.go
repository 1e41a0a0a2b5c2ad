package mockscene

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lokanhome/lokan-go/errors"
	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/scene"
)

const (
	// ServiceName is reported by the health route.
	ServiceName = "scene-svc"

	defaultHealthStatus = "ok"
	defaultMaxBodyBytes = 1 << 20
)

// Options configures the mock handler.
type Options struct {
	// Prefix is prepended to every route, e.g. "/scene-svc". Empty serves
	// from the root.
	Prefix string
	// HealthStatus overrides the "status" value of the health route.
	HealthStatus string
	// FailWith, when 400 or above, makes every route answer with that status
	// and an AppError body.
	FailWith int
	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
	// Logger receives request logs. Defaults to a no-op logger.
	Logger *logger.Logger
}

// Handler is the mock scene service. It is safe for concurrent use.
type Handler struct {
	engine *gin.Engine
	opts   Options
	log    *logger.Logger

	mu         sync.Mutex
	lastApply  []byte
	applyCount int
}

// NewHandler builds the gin engine serving the mock routes.
func NewHandler(opts Options) *Handler {
	gin.SetMode(gin.ReleaseMode)

	if opts.HealthStatus == "" {
		opts.HealthStatus = defaultHealthStatus
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	opts.Prefix = strings.TrimSuffix(opts.Prefix, "/")

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	h := &Handler{
		engine: gin.New(),
		opts:   opts,
		log:    log.WithComponent(logger.ComponentMock),
	}
	h.engine.HandleMethodNotAllowed = true
	h.engine.Use(recovery(h.log), requestID(), bodyLimit(opts.MaxBodyBytes), requestLogger(h.log))
	if opts.FailWith >= 400 {
		h.engine.Use(h.injectFailure)
	}

	h.engine.GET(opts.Prefix+"/health", h.health)
	h.engine.POST(opts.Prefix+"/scenes/apply", h.apply)
	h.engine.NoRoute(func(c *gin.Context) {
		respondError(c, apperrors.NotFound(c.Request.URL.Path))
	})
	h.engine.NoMethod(func(c *gin.Context) {
		respondError(c, apperrors.MethodNotAllowed(c.Request.Method, c.Request.URL.Path))
	})

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}

// LastApplyBody returns a copy of the body of the most recent apply request,
// or nil if none was received.
func (h *Handler) LastApplyBody() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastApply == nil {
		return nil
	}
	return append([]byte(nil), h.lastApply...)
}

// ApplyCount returns the number of apply requests received.
func (h *Handler) ApplyCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.applyCount
}

func (h *Handler) injectFailure(c *gin.Context) {
	respondError(c, apperrors.FromStatus(h.opts.FailWith, ServiceName))
	c.Abort()
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  h.opts.HealthStatus,
		"service": ServiceName,
	})
}

func (h *Handler) apply(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "Request body too large.", http.StatusRequestEntityTooLarge).
				WithDetail("limit_bytes", h.opts.MaxBodyBytes))
			return
		}
		respondError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}

	h.mu.Lock()
	h.lastApply = body
	h.applyCount++
	h.mu.Unlock()

	h.log.Info("scene apply received", logger.Fields(
		logger.FieldBytes, len(body),
		logger.FieldRequestID, c.GetString(ctxRequestID),
	))

	var req scene.SceneRequest
	if json.Unmarshal(body, &req) == nil && len(req.Operations) > 0 {
		c.JSON(http.StatusOK, applyOperations(req))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// applyOperations reports every addressed operation as applied and skips
// operations without a device ID.
func applyOperations(req scene.SceneRequest) scene.SceneResponse {
	resp := scene.SceneResponse{Status: scene.SceneApplied}
	for _, op := range req.Operations {
		if op.DeviceID == "" {
			resp.Results = append(resp.Results, scene.DeviceApplyResult{
				Status: scene.DeviceSkipped,
				Detail: "missing device_id",
			})
			resp.Status = scene.ScenePartialFailure
			continue
		}
		resp.Results = append(resp.Results, scene.DeviceApplyResult{
			DeviceID: op.DeviceID,
			Status:   scene.DeviceApplied,
		})
	}
	return resp
}

func respondError(c *gin.Context, err error) {
	status, body := apperrors.ResponseFor(err)
	c.JSON(status, body)
}
