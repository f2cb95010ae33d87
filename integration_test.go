package orbit_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbit "github.com/autonyze/orbit-go"
	"github.com/autonyze/orbit-go/mockserver"
)

// Exercises the client end to end against the mock backend: login, every
// resource read, mutations, upload and logout.
func TestClientAgainstMockBackend(t *testing.T) {
	backend := httptest.NewServer(mockserver.New(mockserver.NewSeededStore()))
	defer backend.Close()

	client, err := orbit.NewClient(backend.URL)
	require.NoError(t, err)
	ctx := context.Background()

	response, err := client.Login(ctx, mockserver.DemoUsername, mockserver.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "demo@autonyze.com", response.User.Email)
	assert.True(t, client.IsAuthenticated())

	assistants, err := client.GetAssistants(ctx)
	require.NoError(t, err)
	require.Len(t, assistants, 2)

	created, err := client.CreateAssistant(ctx, orbit.AssistantParams{
		Name:     "Insurance FAQ Bot",
		Voice:    "nova",
		Language: "en-US",
		IsActive: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := client.UpdateAssistant(ctx, created.ID, orbit.AssistantParams{
		Name:     "Insurance FAQ Bot",
		Voice:    "alloy",
		Language: "en-US",
		IsActive: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "alloy", updated.Voice)
	assert.False(t, updated.IsActive)

	require.NoError(t, client.DeleteAssistant(ctx, created.ID))
	err = client.DeleteAssistant(ctx, created.ID)
	require.Error(t, err, "deleting twice must fail")
	assert.Equal(t, "assistant not found", err.Error())

	calls, err := client.GetCalls(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, calls)

	assistantCalls, err := client.GetAssistantCalls(ctx, calls[0].AssistantID)
	require.NoError(t, err)
	assert.NotEmpty(t, assistantCalls)

	numbers, err := client.GetPhoneNumbers(ctx)
	require.NoError(t, err)
	require.Len(t, numbers, 1)

	analytics, err := client.GetCallAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, analytics.Total)

	recent, err := client.GetRecentCallAnalytics(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	conversations, err := client.GetConversations(ctx)
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	messages, err := client.GetConversationMessages(ctx, conversations[0].ID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	leads, err := client.GetLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	lead, err := client.CreateLead(ctx, orbit.LeadParams{
		Name:  "Maria Lopez",
		Email: "maria.lopez@example.com",
		Phone: "+14155550199",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", lead.Status)

	campaigns, err := client.GetCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)

	templates, err := client.GetTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)

	file, err := client.UploadFile(ctx, "pricing.txt",
		strings.NewReader("cleaning: $120"), map[string]string{"kind": "knowledge"})
	require.NoError(t, err)
	assert.Equal(t, "pricing.txt", file.Name)
	assert.Equal(t, "knowledge", file.Metadata["kind"])

	files, err := client.GetFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, client.DeleteFile(ctx, files[0].ID))

	client.Logout(ctx)
	assert.False(t, client.IsAuthenticated())

	_, err = client.GetAssistants(ctx)
	require.Error(t, err, "no tokens held after logout")
}
