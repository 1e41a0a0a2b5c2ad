package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lokanhome/lokan-go/logger"
)

const applyPath = "/scenes/apply"

// ApplyOption configures a single ApplyScene call.
type ApplyOption func(*applyOptions)

type applyOptions struct {
	payload    string
	hasPayload bool
}

// WithPayload sends payload verbatim as the request body instead of the
// generated {"sceneId":...} document. The scene ID is then ignored.
// An empty payload sends a POST without a body.
func WithPayload(payload string) ApplyOption {
	return func(o *applyOptions) {
		o.payload = payload
		o.hasPayload = true
	}
}

// ApplyScene asks the service to apply a scene with POST {base}/scenes/apply.
//
// Without WithPayload the body is {"sceneId":"<sceneID>"} with sceneID
// inserted literally; it is not escaped, so an ID containing '"' or '\'
// produces invalid JSON. Use ApplyOperations for structured requests.
// Any 2xx or 3xx status is success; the response body is ignored.
func (c *Client) ApplyScene(ctx context.Context, sceneID string, opts ...ApplyOption) error {
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasPayload && sceneID == "" {
		return newError(CodeInvalidArgument, "apply scene", "scene ID is required", nil)
	}

	body := o.payload
	if !o.hasPayload {
		body = `{"sceneId":"` + sceneID + `"}`
	}

	_, status, err := c.do(ctx, http.MethodPost, applyPath, []byte(body))
	if err != nil {
		return err
	}

	c.log.Debug("scene applied", logger.Fields(
		logger.FieldSceneID, sceneID,
		logger.FieldStatusCode, status,
	))
	return nil
}

// SceneStatus is the overall outcome reported by ApplyOperations.
type SceneStatus string

const (
	SceneApplied        SceneStatus = "applied"
	ScenePartialFailure SceneStatus = "partial_failure"
	SceneFailed         SceneStatus = "failed"
)

// DeviceStatus is the outcome of one device operation.
type DeviceStatus string

const (
	DeviceApplied    DeviceStatus = "applied"
	DeviceRolledBack DeviceStatus = "rolled_back"
	DeviceFailed     DeviceStatus = "failed"
	DeviceSkipped    DeviceStatus = "skipped"
)

// DeviceOperation sets the state of one device.
type DeviceOperation struct {
	DeviceID string          `json:"device_id"`
	State    json.RawMessage `json:"state"`
}

// SceneRequest is a structured scene application.
type SceneRequest struct {
	SceneID    string            `json:"scene_id,omitempty"`
	Operations []DeviceOperation `json:"operations"`
}

// DeviceApplyResult reports the outcome for one device.
type DeviceApplyResult struct {
	DeviceID string       `json:"device_id"`
	Status   DeviceStatus `json:"status"`
	Detail   string       `json:"detail,omitempty"`
}

// SceneResponse is the decoded reply of ApplyOperations. It is zero when the
// service returns an empty body.
type SceneResponse struct {
	Status  SceneStatus         `json:"status"`
	Results []DeviceApplyResult `json:"results,omitempty"`
}

// Validate checks that the request carries at least one addressed operation.
func (r *SceneRequest) Validate() error {
	if len(r.Operations) == 0 {
		return newError(CodeInvalidArgument, "apply operations", "at least one operation is required", nil)
	}
	for i, op := range r.Operations {
		if op.DeviceID == "" {
			return newError(CodeInvalidArgument, "apply operations",
				fmt.Sprintf("operation %d: device ID is required", i), nil)
		}
	}
	return nil
}

// ApplyOperations sends a structured SceneRequest to POST {base}/scenes/apply
// and decodes the reply.
func (c *Client) ApplyOperations(ctx context.Context, req SceneRequest) (*SceneResponse, error) {
	const op = "apply operations"
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, newError(CodeInvalidArgument, op, "encoding request", err)
	}

	data, _, err := c.do(ctx, http.MethodPost, applyPath, body)
	if err != nil {
		return nil, err
	}

	resp := &SceneResponse{}
	if len(data) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, newError(CodeParseError, op, "decoding response", err)
	}

	c.log.Debug("scene operations applied", logger.Fields(
		logger.FieldSceneID, req.SceneID,
		logger.FieldStatus, string(resp.Status),
		"operations", len(req.Operations),
	))
	return resp, nil
}
