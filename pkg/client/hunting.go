package client

import (
	"context"

	"github.com/siemlab/console/internal/domain/hunting"
)

// HuntingService executes ad-hoc KQL queries
type HuntingService struct {
	client *Client
}

// QueryRequest carries a raw KQL query string
type QueryRequest struct {
	Query string `json:"query"`
}

// Query runs a KQL query against the simulated log tables. Query syntax
// errors come back inside the result's Error field with a 200 status, so
// callers must check result.Failed().
func (s *HuntingService) Query(ctx context.Context, query string) (*hunting.QueryResult, error) {
	req := QueryRequest{Query: query}
	var result hunting.QueryResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/sentinel/query/kql", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
