package client

import (
	"context"
	"fmt"

	"github.com/siemlab/console/internal/domain/incident"
)

// IncidentService handles incident operations
type IncidentService struct {
	client *Client
}

// ListIncidentsResponse is the incident collection envelope
type ListIncidentsResponse struct {
	Incidents []incident.Incident `json:"incidents"`
	Total     int                 `json:"total"`
}

// UpdateIncidentRequest carries an incident mutation. The backend is
// authoritative: the response body is the full updated incident and
// replaces the caller's snapshot.
type UpdateIncidentRequest struct {
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
}

// List retrieves the full incident collection
func (s *IncidentService) List(ctx context.Context) ([]incident.Incident, error) {
	var resp ListIncidentsResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/sentinel/incidents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Incidents, nil
}

// Get retrieves a single incident by ID
func (s *IncidentService) Get(ctx context.Context, id string) (*incident.Incident, error) {
	var inc incident.Incident
	path := fmt.Sprintf("/api/v1/sentinel/incidents/%s", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// Update patches an incident's status and assignment and returns the
// server's updated representation.
func (s *IncidentService) Update(ctx context.Context, id string, req UpdateIncidentRequest) (*incident.Incident, error) {
	var inc incident.Incident
	path := fmt.Sprintf("/api/v1/sentinel/incidents/%s", id)
	if err := s.client.doRequest(ctx, "PATCH", path, req, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}
