package orbit

import (
	"context"
	"net/http"
)

// CallStatusAnalytics aggregates call outcomes by status.
type CallStatusAnalytics struct {
	Statuses map[string]int `json:"statuses"`
	Total    int            `json:"total"`
}

func (c *Client) GetCallAnalytics(ctx context.Context) (*CallStatusAnalytics, error) {
	analytics := new(CallStatusAnalytics)
	if err := c.do(ctx, http.MethodGet, "/api/analytics/calls/statuses", nil, analytics); err != nil {
		return nil, err
	}
	return analytics, nil
}

func (c *Client) GetRecentCallAnalytics(ctx context.Context) ([]Call, error) {
	var calls []Call
	if err := c.do(ctx, http.MethodGet, "/api/analytics/calls/recent", nil, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}
