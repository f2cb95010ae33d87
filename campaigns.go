package orbit

import (
	"context"
	"net/http"
	"time"
)

// Campaign is an outreach run over one channel (calls, sms or email).
type Campaign struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Channel       string           `json:"channel"`
	Status        string           `json:"status"`
	TemplateID    string           `json:"template_id"`
	AssistantID   string           `json:"assistant_id,omitempty"`
	PhoneNumberID string           `json:"phone_number_id,omitempty"`
	Targets       int              `json:"targets"`
	Sent          int              `json:"sent"`
	Delivered     int              `json:"delivered"`
	Opened        int              `json:"opened"`
	Clicked       int              `json:"clicked"`
	Failed        int              `json:"failed"`
	HourlyLimit   int              `json:"hourly_limit"`
	Schedule      CampaignSchedule `json:"schedule"`
	CreatedAt     time.Time        `json:"created_at"`
	StartedAt     *time.Time       `json:"started_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

type CampaignSchedule struct {
	StartDate   time.Time    `json:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	TimeWindows []TimeWindow `json:"time_windows"`
	Timezone    string       `json:"timezone"`
}

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (c *Client) GetCampaigns(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.do(ctx, http.MethodGet, "/api/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}
