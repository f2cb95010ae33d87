package orbit

import (
	"context"
	"net/http"
	"time"
)

// Template is a reusable call script, SMS or email body with
// placeholders.
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Vertical     string    `json:"vertical"`
	Subject      string    `json:"subject,omitempty"`
	Content      string    `json:"content"`
	Placeholders []string  `json:"placeholders"`
	IsActive     bool      `json:"is_active"`
	UsageCount   int       `json:"usage_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Client) GetTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
