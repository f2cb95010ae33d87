package orbit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultUserAgent = "orbit-go/" + Version

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenStore sets the session persistence backend. Defaults to an
// in-memory store.
func WithTokenStore(store TokenStore) ClientOption {
	return func(c *Client) {
		c.store = store
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Ignored when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// Client issues HTTP requests against the Orbit backend, attaching bearer
// authentication and transparently recovering from an expired access token
// with a single refresh-and-retry cycle per request.
//
// A Client is safe for concurrent use. Construct one per backend and pass
// it to all callers; there is no package-level instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
	timeout    time.Duration
	userAgent  string

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	// serializes concurrent refresh attempts so simultaneous 401s await
	// one in-flight refresh instead of racing each other with an already
	// rotated refresh token
	refreshGroup singleflight.Group
}

// NewClient creates a client for the given base URL and loads any session
// persisted in the token store.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		store:     NewMemoryTokenStore(),
		userAgent: defaultUserAgent,
	}

	for _, option := range options {
		option(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Transport: &userAgentTransport{t: http.DefaultTransport, userAgent: client.userAgent},
			Timeout:   client.timeout,
		}
	}

	session, err := client.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading persisted session: %w", err)
	}
	client.accessToken = session.AccessToken
	client.refreshToken = session.RefreshToken

	return client, nil
}

type userAgentTransport struct {
	t         http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.userAgent)
	return t.t.RoundTrip(req)
}

// IsAuthenticated reports whether an access token is currently held.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// AccessToken returns the currently held access token, or the empty string.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) currentTokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// saveSession updates memory and the token store in one step.
func (c *Client) saveSession(accessToken, refreshToken string) {
	c.mu.Lock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	c.mu.Unlock()

	if err := c.store.Save(Session{AccessToken: accessToken, RefreshToken: refreshToken}); err != nil {
		slog.Error("persisting session", "error", err)
	}
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		slog.Error("clearing persisted session", "error", err)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the payload of a successful POST /api/login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Login authenticates with username and password and stores the returned
// token pair in memory and in the token store.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var response LoginResponse
	err := c.doUnauthenticated(ctx, http.MethodPost, "/api/login", loginRequest{
		Username: username,
		Password: password,
	}, &response)
	if err != nil {
		return nil, err
	}

	c.saveSession(response.AccessToken, response.RefreshToken)
	return &response, nil
}

// Logout invalidates the session server-side on a best-effort basis and
// always clears the local session. A failed server-side logout never
// blocks the local cleanup and is not surfaced to the caller.
func (c *Client) Logout(ctx context.Context) {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		slog.Error("server-side logout failed", "error", err)
	}
	c.clearSession()
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// refreshAccessToken exchanges the held refresh token for a new access
// token. Concurrent callers share a single in-flight refresh. Returns
// false without a network call when no refresh token is held. Any refresh
// failure is terminal: the whole session is cleared.
func (c *Client) refreshAccessToken(ctx context.Context) bool {
	refreshed, _, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		// the outcome is shared with every waiter, so the refresh must not
		// die with the winning caller's context
		return c.refreshAccessTokenLocked(context.WithoutCancel(ctx)), nil
	})
	return refreshed.(bool)
}

func (c *Client) refreshAccessTokenLocked(ctx context.Context) bool {
	_, refreshToken := c.currentTokens()
	if refreshToken == "" {
		return false
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		slog.Error("token refresh failed", "error", err)
		c.clearSession()
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/refresh", bytes.NewReader(body))
	if err != nil {
		slog.Error("token refresh failed", "error", err)
		c.clearSession()
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("token refresh failed", "error", err)
		c.clearSession()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("token refresh rejected", "status", resp.StatusCode)
		c.clearSession()
		return false
	}

	var response refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		slog.Error("token refresh failed", "error", err)
		c.clearSession()
		return false
	}

	// the server may rotate the refresh token; keep the old one otherwise
	if response.RefreshToken == "" {
		response.RefreshToken = refreshToken
	}
	c.saveSession(response.AccessToken, response.RefreshToken)
	return true
}

// Do issues an authenticated JSON request against a relative path and
// decodes the response into out (which may be nil). It is the generic
// entry point behind the typed resource methods, exposed for endpoints
// the SDK does not model.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, true)
}

// do issues an authenticated JSON request and decodes the response into
// out (which may be nil). On a 401 with a refresh token held it performs
// exactly one refresh-and-retry cycle; the retried request is never
// retried again.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, true)
}

func (c *Client) doUnauthenticated(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, false)
}

func (c *Client) request(ctx context.Context, method, path string, body, out any, requiresAuth bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	newRequest := func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if requiresAuth {
			if accessToken, _ := c.currentTokens(); accessToken != "" {
				req.Header.Set("Authorization", "Bearer "+accessToken)
			}
		}
		return req, nil
	}

	req, err := newRequest()
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && requiresAuth {
		if _, refreshToken := c.currentTokens(); refreshToken != "" {
			// keep the original failure around in case the refresh fails
			firstBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return fmt.Errorf("reading response body: %w", readErr)
			}

			if !c.refreshAccessToken(ctx) {
				return newAPIError(http.StatusUnauthorized, firstBody)
			}

			req, err = newRequest()
			if err != nil {
				return err
			}
			resp, err = c.httpClient.Do(req)
			if err != nil {
				slog.Error("retried request failed", "method", method, "path", path, "error", err)
				return fmt.Errorf("sending retried request: %w", err)
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}

	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// UploadFile uploads a file as a multipart form with an optional
// JSON-encoded metadata field. Unlike the JSON request path there is no
// refresh-and-retry on 401: a request hitting an expired access token
// fails outright. Known limitation carried over from the original API
// behavior, kept so observable behavior under token expiry is unchanged.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader, metadata any) (*File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copying file content: %w", err)
	}

	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding metadata: %w", err)
		}
		if err := writer.WriteField("metadata", string(metadataJSON)); err != nil {
			return nil, fmt.Errorf("writing metadata field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// the multipart writer picks the boundary; only auth is set explicitly
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if accessToken, _ := c.currentTokens(); accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("file upload failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("sending upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload failed: %s", resp.Status)
	}

	file := new(File)
	if err := json.NewDecoder(resp.Body).Decode(file); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return file, nil
}
