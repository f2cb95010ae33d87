package orbit

import (
	"context"
	"net/http"
	"time"
)

// Conversation is an ongoing message thread between a lead and an
// assistant or a human agent.
type Conversation struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id"`
	AssistantID   string    `json:"assistant_id,omitempty"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int       `json:"message_count"`
	Type          string    `json:"type"`
	AssignedTo    string    `json:"assigned_to,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Message is a single SMS or email within a conversation.
type Message struct {
	ID          string     `json:"id"`
	CampaignID  string     `json:"campaign_id,omitempty"`
	LeadID      string     `json:"lead_id"`
	Type        string     `json:"type"`
	Direction   string     `json:"direction"`
	Subject     string     `json:"subject,omitempty"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	FromAddress string     `json:"from_address"`
	ToAddress   string     `json:"to_address"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	ClickedAt   *time.Time `json:"clicked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (c *Client) GetConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *Client) GetConversationMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var messages []Message
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+conversationID+"/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
