// Package mockserver implements an in-process Orbit backend for tests and
// local development. It serves the same routes and JSON shapes as the
// hosted API, issues real (HS256-signed) token pairs and rotates refresh
// tokens on every refresh.
package mockserver

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/segmentio/ksuid"

	orbit "github.com/autonyze/orbit-go"
)

const tokenIssuer = "orbit-mockserver"

type ServerOption func(*Server)

// WithTokenTTLs overrides the access and refresh token lifetimes.
// Short TTLs make expiry paths testable without waiting.
func WithTokenTTLs(accessTTL, refreshTTL time.Duration) ServerOption {
	return func(s *Server) {
		s.accessTTL = accessTTL
		s.refreshTTL = refreshTTL
	}
}

func WithSigningSecret(secret []byte) ServerOption {
	return func(s *Server) {
		s.secret = secret
	}
}

// Server is the mock backend. It implements http.Handler and can be
// mounted directly into an httptest.Server.
type Server struct {
	echo       *echo.Echo
	store      *Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	mu      sync.Mutex
	revoked map[string]struct{}
	// outstanding refresh jtis per subject, so logout can burn all of them
	outstanding map[string]map[string]struct{}
}

func New(store *Store, options ...ServerOption) *Server {
	s := &Server{
		echo:        echo.New(),
		store:       store,
		accessTTL:   15 * time.Minute,
		refreshTTL:  7 * 24 * time.Hour,
		revoked:     make(map[string]struct{}),
		outstanding: make(map[string]map[string]struct{}),
	}

	for _, option := range options {
		option(s)
	}

	if s.secret == nil {
		s.secret = make([]byte, 32)
		if _, err := rand.Read(s.secret); err != nil {
			panic(fmt.Sprintf("generating signing secret: %v", err))
		}
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.POST("/api/login", s.handleLogin)
	e.POST("/api/refresh", s.handleRefresh)

	api := e.Group("/api", s.requireAuth)
	api.POST("/logout", s.handleLogout)

	api.GET("/assistants", s.handleListAssistants)
	api.POST("/assistants", s.handleCreateAssistant)
	api.PUT("/assistants/:id", s.handleUpdateAssistant)
	api.DELETE("/assistants/:id", s.handleDeleteAssistant)
	api.GET("/assistants/:id/calls", s.handleListAssistantCalls)

	api.GET("/calls", s.handleListCalls)
	api.GET("/phone_numbers", s.handleListPhoneNumbers)

	api.GET("/files", s.handleListFiles)
	api.POST("/files/upload", s.handleUploadFile)
	api.DELETE("/files/:id", s.handleDeleteFile)

	api.GET("/analytics/calls/statuses", s.handleCallStatusAnalytics)
	api.GET("/analytics/calls/recent", s.handleRecentCallAnalytics)

	api.GET("/conversations", s.handleListConversations)
	api.GET("/conversations/:id/messages", s.handleListConversationMessages)

	api.GET("/leads", s.handleListLeads)
	api.POST("/leads", s.handleCreateLead)
	api.PUT("/leads/:id", s.handleUpdateLead)
	api.DELETE("/leads/:id", s.handleDeleteLead)

	api.GET("/campaigns", s.handleListCampaigns)
	api.GET("/templates", s.handleListTemplates)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	slog.Info("starting mock backend", "addr", addr)
	return s.echo.Start(addr)
}

// Error is the JSON error envelope of the backend.
type Error struct {
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, Error{Message: message})
}

func (s *Server) issueToken(subject, tokenType string, ttl time.Duration) (string, string, error) {
	jti := ksuid.New().String()
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(subject).
		JwtID(jti).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim("typ", tokenType).
		Build()
	if err != nil {
		return "", "", fmt.Errorf("building token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", "", fmt.Errorf("signing token: %w", err)
	}
	return string(signed), jti, nil
}

func (s *Server) parseToken(raw, wantType string) (jwt.Token, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, err
	}
	tokenType, _ := token.Get("typ")
	if tokenType != wantType {
		return nil, fmt.Errorf("unexpected token type %v", tokenType)
	}
	return token, nil
}

func (s *Server) isRevoked(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, revoked := s.revoked[jti]
	return revoked
}

// trackRefresh records a freshly issued refresh jti as outstanding for the
// subject until it is rotated away or revoked by logout.
func (s *Server) trackRefresh(subject, jti string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outstanding[subject] == nil {
		s.outstanding[subject] = make(map[string]struct{})
	}
	s.outstanding[subject][jti] = struct{}{}
}

func (s *Server) revoke(subject, jti string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = struct{}{}
	delete(s.outstanding[subject], jti)
}

// revokeAllRefresh burns every outstanding refresh token of the subject.
func (s *Server) revokeAllRefresh(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti := range s.outstanding[subject] {
		s.revoked[jti] = struct{}{}
	}
	delete(s.outstanding, subject)
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get("Authorization")
		raw, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || raw == "" {
			return errorJSON(c, http.StatusUnauthorized, "missing bearer token")
		}
		token, err := s.parseToken(raw, "access")
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "invalid or expired access token")
		}
		c.Set("subject", token.Subject())
		return next(c)
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&credentials); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}

	user, ok := s.store.Authenticate(credentials.Username, credentials.Password)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "invalid username or password")
	}

	accessToken, _, err := s.issueToken(credentials.Username, "access", s.accessTTL)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "issuing access token")
	}
	refreshToken, refreshJti, err := s.issueToken(credentials.Username, "refresh", s.refreshTTL)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "issuing refresh token")
	}
	s.trackRefresh(credentials.Username, refreshJti)

	return c.JSON(http.StatusOK, orbit.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}

	token, err := s.parseToken(body.RefreshToken, "refresh")
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid or expired refresh token")
	}
	if s.isRevoked(token.JwtID()) {
		return errorJSON(c, http.StatusUnauthorized, "refresh token has been revoked")
	}

	// rotation: the presented refresh token is burned and a new one issued
	s.revoke(token.Subject(), token.JwtID())

	accessToken, _, err := s.issueToken(token.Subject(), "access", s.accessTTL)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "issuing access token")
	}
	refreshToken, refreshJti, err := s.issueToken(token.Subject(), "refresh", s.refreshTTL)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "issuing refresh token")
	}
	s.trackRefresh(token.Subject(), refreshJti)

	return c.JSON(http.StatusOK, map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	// burn every refresh token issued to the subject; the stateless access
	// token simply runs out its TTL
	s.revokeAllRefresh(c.Get("subject").(string))
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleListAssistants(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListAssistants())
}

func (s *Server) handleCreateAssistant(c echo.Context) error {
	var params orbit.AssistantParams
	if err := c.Bind(&params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}
	if params.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "assistant name is required")
	}
	return c.JSON(http.StatusCreated, s.store.CreateAssistant(params))
}

func (s *Server) handleUpdateAssistant(c echo.Context) error {
	var params orbit.AssistantParams
	if err := c.Bind(&params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}
	assistant, ok := s.store.UpdateAssistant(c.Param("id"), params)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "assistant not found")
	}
	return c.JSON(http.StatusOK, assistant)
}

func (s *Server) handleDeleteAssistant(c echo.Context) error {
	if !s.store.DeleteAssistant(c.Param("id")) {
		return errorJSON(c, http.StatusNotFound, "assistant not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListAssistantCalls(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListAssistantCalls(c.Param("id")))
}

func (s *Server) handleListCalls(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListCalls())
}

func (s *Server) handleListPhoneNumbers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListPhoneNumbers())
}

func (s *Server) handleListFiles(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListFiles())
}

func (s *Server) handleUploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "missing file field")
	}

	var metadata map[string]any
	if raw := c.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return errorJSON(c, http.StatusBadRequest, "metadata is not valid JSON")
		}
	}

	file := s.store.AddFile(
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		metadata,
	)
	return c.JSON(http.StatusCreated, file)
}

func (s *Server) handleDeleteFile(c echo.Context) error {
	if !s.store.DeleteFile(c.Param("id")) {
		return errorJSON(c, http.StatusNotFound, "file not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCallStatusAnalytics(c echo.Context) error {
	statuses, total := s.store.CallStatusCounts()
	return c.JSON(http.StatusOK, orbit.CallStatusAnalytics{
		Statuses: statuses,
		Total:    total,
	})
}

func (s *Server) handleRecentCallAnalytics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.RecentCalls(20))
}

func (s *Server) handleListConversations(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListConversations())
}

func (s *Server) handleListConversationMessages(c echo.Context) error {
	messages, ok := s.store.ListConversationMessages(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "conversation not found")
	}
	return c.JSON(http.StatusOK, messages)
}

func (s *Server) handleListLeads(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListLeads())
}

func (s *Server) handleCreateLead(c echo.Context) error {
	var params orbit.LeadParams
	if err := c.Bind(&params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}
	if params.Name == "" {
		return errorJSON(c, http.StatusBadRequest, "lead name is required")
	}
	return c.JSON(http.StatusCreated, s.store.CreateLead(params))
}

func (s *Server) handleUpdateLead(c echo.Context) error {
	var params orbit.LeadParams
	if err := c.Bind(&params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "malformed request body")
	}
	lead, ok := s.store.UpdateLead(c.Param("id"), params)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "lead not found")
	}
	return c.JSON(http.StatusOK, lead)
}

func (s *Server) handleDeleteLead(c echo.Context) error {
	if !s.store.DeleteLead(c.Param("id")) {
		return errorJSON(c, http.StatusNotFound, "lead not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListCampaigns(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListCampaigns())
}

func (s *Server) handleListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListTemplates())
}
