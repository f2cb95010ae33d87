package orbit

import (
	"context"
	"net/http"
	"time"
)

// File is an uploaded knowledge-base document.
type File struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Size        int64          `json:"size"`
	ContentType string         `json:"content_type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (c *Client) GetFiles(ctx context.Context) ([]File, error) {
	var files []File
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+fileID, nil, nil)
}
