package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPBookingClient calls the remote booking backend over JSON HTTP
type HTTPBookingClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPBookingClient(baseURL string, timeout time.Duration) *HTTPBookingClient {
	return &HTTPBookingClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SubmitReservation posts the booking request and decodes the reservation
// numbers. Backend rejections are surfaced verbatim.
func (c *HTTPBookingClient) SubmitReservation(ctx context.Context, req *BookingRequest) ([]ConfirmedReservation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reservations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("booking backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("booking backend returned %d: %s", resp.StatusCode, string(detail))
	}

	var reservations []ConfirmedReservation
	if err := json.NewDecoder(resp.Body).Decode(&reservations); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}
	if len(reservations) == 0 {
		return nil, fmt.Errorf("booking backend returned no reservation numbers")
	}

	return reservations, nil
}
