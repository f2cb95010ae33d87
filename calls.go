package orbit

import (
	"context"
	"net/http"
	"time"
)

// Call is a single outbound or inbound call handled by an assistant.
type Call struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id,omitempty"`
	LeadID        string    `json:"lead_id"`
	AssistantID   string    `json:"assistant_id"`
	PhoneNumberID string    `json:"phone_number_id"`
	Destination   string    `json:"destination"`
	Status        string    `json:"status"`
	Duration      int       `json:"duration"`
	Cost          float64   `json:"cost"`
	Transcript    string    `json:"transcript,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	Sentiment     string    `json:"sentiment,omitempty"`
	Outcome       string    `json:"outcome,omitempty"`
	RecordingURL  string    `json:"recording_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Client) GetCalls(ctx context.Context) ([]Call, error) {
	var calls []Call
	if err := c.do(ctx, http.MethodGet, "/api/calls", nil, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

func (c *Client) GetAssistantCalls(ctx context.Context, assistantID string) ([]Call, error) {
	var calls []Call
	if err := c.do(ctx, http.MethodGet, "/api/assistants/"+assistantID+"/calls", nil, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}
