package client

import (
	"context"
	"fmt"

	"github.com/siemlab/console/internal/domain/alert"
)

// AlertService handles alert operations
type AlertService struct {
	client *Client
}

// ListAlertsResponse is the alert collection envelope
type ListAlertsResponse struct {
	Alerts []alert.Alert `json:"alerts"`
	Total  int           `json:"total"`
}

// List retrieves the full alert collection
func (s *AlertService) List(ctx context.Context) ([]alert.Alert, error) {
	var resp ListAlertsResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/defender/alerts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// Get retrieves a single alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*alert.Alert, error) {
	var a alert.Alert
	path := fmt.Sprintf("/api/v1/defender/alerts/%s", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
