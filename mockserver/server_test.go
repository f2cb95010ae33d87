package mockserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autonyze/orbit-go/mockserver"
)

func startServer(t *testing.T, options ...mockserver.ServerOption) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(mockserver.New(mockserver.NewSeededStore(), options...))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, server *httptest.Server) (accessToken, refreshToken string) {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/login", map[string]string{
		"username": mockserver.DemoUsername,
		"password": mockserver.DemoPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["access_token"].(string), body["refresh_token"].(string)
}

func TestLogin(t *testing.T) {
	server := startServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		accessToken, refreshToken := login(t, server)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/login", map[string]string{
			"username": mockserver.DemoUsername,
			"password": "wrong",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/login", map[string]string{
			"username": "nobody",
			"password": "secret",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	server := startServer(t)

	resp, err := http.Get(server.URL + "/api/assistants")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "missing bearer token", body["message"])
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	server := startServer(t, mockserver.WithTokenTTLs(-time.Minute, time.Hour))
	accessToken, _ := login(t, server)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/assistants", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	server := startServer(t)
	_, refreshToken := login(t, server)

	// first refresh succeeds and rotates the token
	resp := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rotated map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rotated))
	resp.Body.Close()
	assert.NotEmpty(t, rotated["access_token"])
	assert.NotEmpty(t, rotated["refresh_token"])
	assert.NotEqual(t, refreshToken, rotated["refresh_token"])

	// replaying the burned token fails
	replay := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": refreshToken})
	defer replay.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)

	// the rotated token still works
	again := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": rotated["refresh_token"]})
	defer again.Body.Close()
	assert.Equal(t, http.StatusOK, again.StatusCode)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	server := startServer(t)

	logout := func(t *testing.T, accessToken string) {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, server.URL+"/api/logout", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	t.Run("token from login", func(t *testing.T) {
		accessToken, refreshToken := login(t, server)
		logout(t, accessToken)

		replay := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": refreshToken})
		defer replay.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)
	})

	t.Run("token from rotation", func(t *testing.T) {
		_, refreshToken := login(t, server)

		resp := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": refreshToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rotated map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rotated))
		resp.Body.Close()

		logout(t, rotated["access_token"])

		replay := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": rotated["refresh_token"]})
		defer replay.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)
	})
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	server := startServer(t)
	accessToken, _ := login(t, server)

	resp := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": accessToken})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRejectsForeignSignature(t *testing.T) {
	server := startServer(t, mockserver.WithSigningSecret([]byte("0123456789abcdef0123456789abcdef")))
	other := startServer(t)
	_, foreignRefresh := login(t, other)

	resp := postJSON(t, server.URL+"/api/refresh", map[string]string{"refresh_token": foreignRefresh})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSeededStore(t *testing.T) {
	store := mockserver.NewSeededStore()

	assert.Len(t, store.ListAssistants(), 2)
	assert.Len(t, store.ListPhoneNumbers(), 1)
	assert.Len(t, store.ListLeads(), 1)
	assert.Len(t, store.ListCampaigns(), 1)
	assert.Len(t, store.ListTemplates(), 1)
	assert.Len(t, store.ListCalls(), 3)

	conversations := store.ListConversations()
	require.Len(t, conversations, 1)
	messages, ok := store.ListConversationMessages(conversations[0].ID)
	require.True(t, ok)
	assert.Len(t, messages, 2)

	statuses, total := store.CallStatusCounts()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, statuses["completed"])
	assert.Equal(t, 1, statuses["no-answer"])
	assert.Equal(t, 1, statuses["failed"])

	recent := store.RecentCalls(2)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].CreatedAt.After(recent[1].CreatedAt))
}
