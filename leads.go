package orbit

import (
	"context"
	"net/http"
	"time"
)

// Lead is a contact tracked by a tenant.
type Lead struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Company       string         `json:"company,omitempty"`
	Title         string         `json:"title,omitempty"`
	Status        string         `json:"status"`
	Source        string         `json:"source"`
	Tags          []string       `json:"tags"`
	LastContacted *time.Time     `json:"last_contacted,omitempty"`
	IsOptedOut    bool           `json:"is_opted_out"`
	CustomFields  map[string]any `json:"custom_fields,omitempty"`
	Score         int            `json:"score"`
	CreatedAt     time.Time      `json:"created_at"`
}

// LeadParams carries the caller-settable lead fields.
type LeadParams struct {
	Name         string         `json:"name"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Company      string         `json:"company,omitempty"`
	Title        string         `json:"title,omitempty"`
	Status       string         `json:"status,omitempty"`
	Source       string         `json:"source,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	IsOptedOut   bool           `json:"is_opted_out"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}

func (c *Client) GetLeads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.do(ctx, http.MethodGet, "/api/leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (c *Client) CreateLead(ctx context.Context, params LeadParams) (*Lead, error) {
	lead := new(Lead)
	if err := c.do(ctx, http.MethodPost, "/api/leads", params, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (c *Client) UpdateLead(ctx context.Context, id string, params LeadParams) (*Lead, error) {
	lead := new(Lead)
	if err := c.do(ctx, http.MethodPut, "/api/leads/"+id, params, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/leads/"+id, nil, nil)
}
