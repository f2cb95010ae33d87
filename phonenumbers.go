package orbit

import (
	"context"
	"net/http"
	"time"
)

// PhoneNumber is a provisioned number that can be assigned to an
// assistant.
type PhoneNumber struct {
	ID                string    `json:"id"`
	Number            string    `json:"number"`
	Type              string    `json:"type"`
	AreaCode          string    `json:"area_code"`
	Country           string    `json:"country"`
	Status            string    `json:"status"`
	AssignedAssistant string    `json:"assigned_assistant,omitempty"`
	TotalCalls        int       `json:"total_calls"`
	MonthlyCost       float64   `json:"monthly_cost"`
	Capabilities      []string  `json:"capabilities"`
	CreatedAt         time.Time `json:"created_at"`
}

func (c *Client) GetPhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	var numbers []PhoneNumber
	if err := c.do(ctx, http.MethodGet, "/api/phone_numbers", nil, &numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}
