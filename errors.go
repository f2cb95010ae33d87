package orbit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is the error envelope returned by the backend. The message is
// best-effort: a non-JSON or empty body yields the generic status fallback.
type APIError struct {
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http error, status %d", e.HTTPStatusCode)
}

func parseAPIError(resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading error response body: %w", err)
	}
	return newAPIError(resp.StatusCode, body)
}

func newAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{HTTPStatusCode: statusCode}
	// tolerate empty and non-JSON bodies
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
