package scene

import (
	"context"
	"net/http"

	"github.com/lokanhome/lokan-go/logger"
)

const (
	healthPath  = "/health"
	statusField = "status"
)

// Health queries GET {base}/health and returns the value of the "status"
// field of the response. A body without a non-empty status yields
// CodeParseError.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, _, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return "", err
	}

	status, err := extractStringField(body, statusField)
	if err != nil {
		return "", newError(CodeParseError, "health", "reading status field", err)
	}

	c.log.Debug("scene service health", logger.Fields(logger.FieldStatus, status))
	return status, nil
}
