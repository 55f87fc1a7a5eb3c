package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// User account endpoints.
const (
	routeSignup             = "/user/signup"
	routeResendVerification = "/user/resend-verification"
	routeForgotPassword     = "/user/forgot-password"
	routeLogin              = "/user/login"
	routeLogout             = "/user/logout"
	routeUserDetails        = "/user/details"
	routeUpdateProfile      = "/user/update-profile"
	routeRemoveProfileImage = "/user/remove-profile-image"
	routeChangePassword     = "/user/change-password"
	routeChangeEmail        = "/user/change-email"
	routeLoginHistory       = "/user/login-history"
)

const contentTypeJSON = "application/json"

// Client talks to the remote user-account API. It is a thin typed layer:
// no retries, no custom timeouts, transport defaults apply.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Signup registers a new account. The server sends a verification email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, routeSignup, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendVerification requests a fresh verification email.
func (c *Client) ResendVerification(ctx context.Context, req ResendVerificationRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, routeResendVerification, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword starts the password recovery flow.
func (c *Client) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, routeForgotPassword, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, routeLogin, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, routeLogout, "", logoutRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserDetails fetches the profile for the bearer token. This is the
// identity check the session resolver relies on.
func (c *Client) UserDetails(ctx context.Context, accessToken string) (*UserDetailsResponse, error) {
	var out UserDetailsResponse
	if err := c.doJSON(ctx, http.MethodGet, routeUserDetails, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile submits a new display name and, optionally, a profile
// image as a multipart form.
func (c *Client) UpdateProfile(ctx context.Context, accessToken, name string, image *ImageUpload) (*MessageResponse, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("name", name); err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "[UpdateProfile] write name field")}
	}
	if image != nil {
		part, err := mw.CreatePart(imagePartHeader(image))
		if err != nil {
			return nil, &TransportError{Err: errors.Wrap(err, "[UpdateProfile] create image part")}
		}
		if _, err := io.Copy(part, image.Data); err != nil {
			return nil, &TransportError{Err: errors.Wrap(err, "[UpdateProfile] copy image")}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "[UpdateProfile] close multipart writer")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+routeUpdateProfile, body)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "[UpdateProfile] new request")}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out MessageResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveProfileImage deletes the stored profile image.
func (c *Client) RemoveProfileImage(ctx context.Context, accessToken string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, routeRemoveProfileImage, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) (*MessageResponse, error) {
	var out MessageResponse
	body := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := c.doJSON(ctx, http.MethodPut, routeChangePassword, accessToken, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeEmail replaces the account email. The new address must be
// verified, so the server invalidates the session.
func (c *Client) ChangeEmail(ctx context.Context, accessToken, password, newEmail string) (*MessageResponse, error) {
	var out MessageResponse
	body := changeEmailRequest{Password: password, NewEmail: newEmail}
	if err := c.doJSON(ctx, http.MethodPut, routeChangeEmail, accessToken, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginHistory fetches the recorded logins for the account.
func (c *Client) LoginHistory(ctx context.Context, accessToken string) (*LoginHistoryResponse, error) {
	var out LoginHistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, routeLoginHistory, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON issues a request with an optional JSON body and bearer token and
// decodes the success body into out.
func (c *Client) doJSON(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Err: errors.Wrap(err, "[doJSON] marshal request body")}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Err: errors.Wrap(err, "[doJSON] new request")}
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.send(req, out)
}

// send executes the request and maps the response to the error taxonomy:
// a non-2xx status with a {"message"} body becomes *Error, anything else
// that is not a well-formed success becomes *TransportError.
func (c *Client) send(req *http.Request, out any) error {
	requestID := uuid.New().String()
	c.log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", requestID).Err(err).Msg("api request failed")
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: errors.Wrap(err, "[send] read response body")}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api response")

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &errBody); err != nil || errBody.Message == "" {
			return &TransportError{Err: errors.Errorf("unexpected response status %d", resp.StatusCode)}
		}
		return &Error{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Err: errors.Wrap(err, "[send] unmarshal response body")}
	}
	return nil
}

func imagePartHeader(image *ImageUpload) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+image.Filename+`"`)
	if image.ContentType != "" {
		h.Set("Content-Type", image.ContentType)
	}
	return h
}
