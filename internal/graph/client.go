package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/imroc/req/v3"
)

const (
	DefaultBaseURL      = "https://graph.microsoft.com/v1.0"
	DefaultAuthorityURL = "https://login.microsoftonline.com"

	graphScope = "https://graph.microsoft.com/.default"

	// refresh the cached token this long before it actually expires
	tokenExpirySlack = 60 * time.Second
)

// ClientConfig holds the settings for a Graph API client.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	TenantID     string

	// BaseURL and AuthorityURL default to the public Microsoft endpoints.
	// Overridable for tests.
	BaseURL      string
	AuthorityURL string
}

// Client is an authenticated Microsoft Graph API client using the OAuth2
// client credentials flow. Tokens are cached until shortly before expiry.
type Client struct {
	http   *req.Client
	config *ClientConfig

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Graph API client.
func NewClient(cfg *ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthorityURL == "" {
		cfg.AuthorityURL = DefaultAuthorityURL
	}

	client := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(60 * time.Second).
		SetCommonHeader("Accept", "application/json")

	return &Client{
		http:   client,
		config: cfg,
	}
}

// BaseURL returns the configured Graph API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// acquireToken returns a valid bearer token, reusing the cached one until
// it nears expiry.
func (c *Client) acquireToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	var tokenResp tokenResponse
	var tokenErr tokenErrorResponse

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.config.AuthorityURL, c.config.TenantID)
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.config.ClientID,
			"client_secret": c.config.ClientSecret,
			"scope":         graphScope,
			"grant_type":    "client_credentials",
		}).
		SetSuccessResult(&tokenResp).
		SetErrorResult(&tokenErr).
		Post(tokenURL)
	if err != nil {
		return "", &AuthError{Reason: "request_failed", Description: err.Error()}
	}
	if resp.IsErrorState() || tokenResp.AccessToken == "" {
		reason := tokenErr.Error
		if reason == "" {
			reason = "unknown_error"
		}
		desc := tokenErr.ErrorDescription
		if desc == "" {
			desc = "no description provided"
		}
		slog.Error("graph token acquisition failed", "reason", reason)
		return "", &AuthError{Reason: reason, Description: desc}
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpirySlack)
	return c.accessToken, nil
}

// GetJSON performs an authenticated GET and decodes the JSON response into out.
// path is relative to the base URL and must start with '/'.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return err
	}

	var graphErr graphErrorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetSuccessResult(out).
		SetErrorResult(&graphErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("graph: get %s: %w", path, err)
	}
	if resp.IsErrorState() {
		return &APIError{Status: resp.StatusCode, Message: errMessage(&graphErr, resp)}
	}
	return nil
}

// GetContent performs an authenticated GET and returns the raw response body.
func (c *Client) GetContent(ctx context.Context, path string) ([]byte, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("graph: get content %s: %w", path, err)
	}
	if resp.IsErrorState() {
		return nil, &APIError{Status: resp.StatusCode, Message: resp.String()}
	}
	return resp.ToBytes()
}

// PutContent performs an authenticated PUT uploading content to the given path.
func (c *Client) PutContent(ctx context.Context, path string, content []byte, contentType string) error {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return err
	}

	var graphErr graphErrorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetContentType(contentType).
		SetBodyBytes(content).
		SetErrorResult(&graphErr).
		Put(path)
	if err != nil {
		return fmt.Errorf("graph: put %s: %w", path, err)
	}
	if resp.IsErrorState() {
		return &APIError{Status: resp.StatusCode, Message: errMessage(&graphErr, resp)}
	}
	return nil
}

// relativePath strips the base URL from a full Graph URL so it can be fed
// back into GetJSON. Unrecognized URLs pass through unchanged.
func (c *Client) relativePath(fullURL string) string {
	if len(fullURL) > len(c.config.BaseURL) && fullURL[:len(c.config.BaseURL)] == c.config.BaseURL {
		return fullURL[len(c.config.BaseURL):]
	}
	return fullURL
}

func errMessage(body *graphErrorBody, resp *req.Response) string {
	if body.Error.Message != "" {
		return body.Error.Message
	}
	return resp.Status
}

// escapePath escapes a single URL path segment.
func escapePath(segment string) string {
	return url.PathEscape(segment)
}
