package farmapi

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login posts credentials and returns the display name the API accepted.
// The API may answer a rejection with any status, so the body decides.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginReq{Username: username, Password: password}).
		Post("/login")
	if err != nil {
		c.logger.Warn("login: api unreachable", zap.Error(err))
		return "", &NetworkError{Op: "login", Err: err}
	}

	var out loginResp
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		if resp.IsError() {
			return "", &StatusError{Op: "login", Code: resp.StatusCode(), Message: errorMessage(resp.Body())}
		}
		return "", &DecodeError{Op: "login", Err: err}
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Invalid credentials"
		}
		c.logger.Info("login rejected", zap.String("username", username))
		return "", &AuthError{Message: msg}
	}
	if name := strings.TrimSpace(out.Username); name != "" {
		return name, nil
	}
	return username, nil
}

// WhoAmI asks the API whether username is a known account. Only 401/403 count
// as a rejection; a 404 means the route is missing and is a StatusError.
func (c *Client) WhoAmI(ctx context.Context, username string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("username", username).
		Get("/whoami")
	if err != nil {
		return &NetworkError{Op: "whoami", Err: err}
	}
	switch {
	case resp.StatusCode() == 401 || resp.StatusCode() == 403:
		return &AuthError{Message: "session user " + username + " is not recognised"}
	case resp.IsError():
		return &StatusError{Op: "whoami", Code: resp.StatusCode(), Message: errorMessage(resp.Body())}
	}
	return nil
}
