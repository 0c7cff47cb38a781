package farmapi

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the external farm REST API. It never retries: a repeated
// POST would create a duplicate record.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a client for baseURL. timeout <= 0 means no client timeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar()).
		SetRetryCount(0)
	if timeout > 0 {
		hc.SetTimeout(timeout)
	}
	hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})
	return &Client{http: hc, logger: logger}
}

// do issues one request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("farm api unreachable", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	if resp.IsError() {
		se := &StatusError{Op: op, Code: resp.StatusCode(), Message: errorMessage(resp.Body())}
		c.logger.Warn("farm api error", zap.String("op", op), zap.String("path", path), zap.Int("status", se.Code))
		return se
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Warn("farm api bad body", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// errorMessage pulls {"message"} or {"error"} out of an error body.
func errorMessage(b []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &m) != nil {
		return strings.TrimSpace(string(b))
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

// Ping checks the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, "ping", "GET", "/stats", nil, nil)
	var se *StatusError
	if errors.As(err, &se) && se.Code < 500 {
		return nil
	}
	return err
}
