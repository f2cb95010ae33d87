package orbit

import (
	"context"
	"net/http"
	"time"
)

// Assistant is an AI voice/SMS/email assistant configured by a tenant.
type Assistant struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Voice         string     `json:"voice"`
	Language      string     `json:"language"`
	Instructions  string     `json:"instructions"`
	IsActive      bool       `json:"is_active"`
	PhoneNumberID string     `json:"phone_number_id,omitempty"`
	CampaignCount int        `json:"campaign_count"`
	LastUsed      *time.Time `json:"last_used,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AssistantParams carries the caller-settable assistant fields for create
// and update operations.
type AssistantParams struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Voice         string `json:"voice,omitempty"`
	Language      string `json:"language,omitempty"`
	Instructions  string `json:"instructions,omitempty"`
	IsActive      bool   `json:"is_active"`
	PhoneNumberID string `json:"phone_number_id,omitempty"`
}

func (c *Client) GetAssistants(ctx context.Context) ([]Assistant, error) {
	var assistants []Assistant
	if err := c.do(ctx, http.MethodGet, "/api/assistants", nil, &assistants); err != nil {
		return nil, err
	}
	return assistants, nil
}

func (c *Client) CreateAssistant(ctx context.Context, params AssistantParams) (*Assistant, error) {
	assistant := new(Assistant)
	if err := c.do(ctx, http.MethodPost, "/api/assistants", params, assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}

func (c *Client) UpdateAssistant(ctx context.Context, id string, params AssistantParams) (*Assistant, error) {
	assistant := new(Assistant)
	if err := c.do(ctx, http.MethodPut, "/api/assistants/"+id, params, assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}

func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/assistants/"+id, nil, nil)
}
