package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/observability"
)

const (
	contentTypeJSON = "application/json"
	headerRequestID = "X-Request-Id"
)

var (
	errBodyTooLarge = errors.New("response body exceeds limit")
	errBufferGrowth = errors.New("response buffer could not grow")
)

// do performs one request against the service and returns the buffered
// response body and status. The body is non-nil on success, empty when the
// server sent nothing. Statuses of 400 and above are reported as
// CodeHTTPError and their body is discarded.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	op := method + " " + path
	if c == nil {
		return nil, 0, newError(CodeInvalidArgument, op, "client is nil", nil)
	}
	if c.closed {
		return nil, 0, newError(CodeInvalidArgument, op, "client is closed", nil)
	}
	if method == "" || path == "" {
		return nil, 0, newError(CodeInvalidArgument, op, "method and path are required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, observability.SpanSceneRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, method),
			attribute.String(observability.AttrURLPath, path),
			attribute.String(observability.AttrRequestID, requestID),
		),
	)
	defer span.End()

	start := time.Now()
	data, status, err := c.roundTrip(ctx, method, path, body, requestID)
	elapsed := time.Since(start)
	code := CodeOf(err)

	observability.SetSpanAttribute(span, observability.AttrResultCode, code.String())
	if status > 0 {
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
	}
	clientMetrics.RecordRequest(ctx, method, path, code.String(), elapsed)

	fields := logger.DurationFields(op, elapsed)
	fields[logger.FieldMethod] = method
	fields[logger.FieldURL] = path
	fields[logger.FieldRequestID] = requestID
	fields[logger.FieldCode] = code.String()
	if status > 0 {
		fields[logger.FieldStatusCode] = status
	}
	if err != nil {
		observability.SetSpanError(span, err)
		c.log.WithError(err).Debug("scene request failed", fields)
		return nil, status, err
	}

	span.SetAttributes(attribute.Int(observability.AttrBodyBytes, len(data)))
	fields[logger.FieldBytes] = len(data)
	c.log.Debug("scene request completed", fields)
	return data, status, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, requestID string) ([]byte, int, error) {
	op := method + " " + path
	target := joinURL(c.cfg.BaseURL, path)

	u, err := url.Parse(target)
	if err != nil {
		return nil, 0, newError(CodeTransportError, op, "invalid URL", err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return nil, 0, newError(CodeTransportError, op, fmt.Sprintf("scheme %q is not https", u.Scheme), nil)
	}
	if err := c.ensureTLS(); err != nil {
		return nil, 0, newError(CodeTransportError, op, "loading TLS material", err)
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, newError(CodeTransportError, op, "creating request", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, requestID)
	observability.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, newError(CodeTransportError, op, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
		e := newError(CodeHTTPError, op, http.StatusText(resp.StatusCode), nil)
		e.StatusCode = resp.StatusCode
		return nil, resp.StatusCode, e
	}

	if resp.ContentLength > c.cfg.MaxResponseBytes {
		return nil, resp.StatusCode, newError(CodeAllocationFailure, op,
			fmt.Sprintf("content length %d", resp.ContentLength), errBodyTooLarge)
	}
	data, err := readBody(resp.Body, c.cfg.MaxResponseBytes)
	switch {
	case errors.Is(err, errBodyTooLarge), errors.Is(err, errBufferGrowth):
		return nil, resp.StatusCode, newError(CodeAllocationFailure, op, "reading response", err)
	case err != nil:
		return nil, resp.StatusCode, newError(CodeTransportError, op, "reading response", err)
	}
	return data, resp.StatusCode, nil
}

// readBody buffers r up to limit bytes. The result is never nil on success.
func readBody(r io.Reader, limit int64) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == bytes.ErrTooLarge {
				data, err = nil, errBufferGrowth
				return
			}
			panic(rec)
		}
	}()

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, errBodyTooLarge
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}
