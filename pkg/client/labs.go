package client

import (
	"context"
	"fmt"

	"github.com/siemlab/console/internal/domain/lab"
)

// LabService handles scenario and challenge operations
type LabService struct {
	client *Client
}

// ListScenariosResponse is the scenario catalog envelope
type ListScenariosResponse struct {
	Scenarios []lab.Scenario `json:"scenarios"`
	Total     int            `json:"total"`
}

// StartScenarioResponse acknowledges a scenario injection
type StartScenarioResponse struct {
	RunID      string `json:"run_id"`
	ScenarioID string `json:"scenario_id"`
	Status     string `json:"status"`
}

// QuestionsResponse holds a scenario's graded questions
type QuestionsResponse struct {
	Questions   []lab.Question `json:"questions"`
	TotalPoints int            `json:"total_points"`
}

// ChallengesResponse holds the query challenge catalog
type ChallengesResponse struct {
	Challenges  []lab.Challenge `json:"challenges"`
	TotalPoints int             `json:"total_points"`
}

// SubmitAnswerRequest is a free-text answer submission
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// ValidateChallengeRequest is a query challenge submission
type ValidateChallengeRequest struct {
	Query string `json:"query"`
}

// Scenarios retrieves the scenario catalog
func (s *LabService) Scenarios(ctx context.Context) ([]lab.Scenario, error) {
	var resp ListScenariosResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/labs/scenarios", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Scenarios, nil
}

// StartScenario injects a scenario's alerts and incidents into the
// training environment.
func (s *LabService) StartScenario(ctx context.Context, scenarioID string) (*StartScenarioResponse, error) {
	var resp StartScenarioResponse
	path := fmt.Sprintf("/api/v1/labs/scenarios/%s/start", scenarioID)
	if err := s.client.doRequest(ctx, "POST", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Questions retrieves a scenario's graded questions
func (s *LabService) Questions(ctx context.Context, scenarioID string) (*QuestionsResponse, error) {
	var resp QuestionsResponse
	path := fmt.Sprintf("/api/v1/labs/scenarios/%s/questions", scenarioID)
	if err := s.client.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitAnswer grades a free-text answer to a scenario question
func (s *LabService) SubmitAnswer(ctx context.Context, scenarioID, questionID, answer string) (*lab.AnswerResult, error) {
	req := SubmitAnswerRequest{QuestionID: questionID, Answer: answer}
	var result lab.AnswerResult
	path := fmt.Sprintf("/api/v1/labs/scenarios/%s/answer", scenarioID)
	if err := s.client.doRequest(ctx, "POST", path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Challenges retrieves the query challenge catalog
func (s *LabService) Challenges(ctx context.Context) ([]lab.Challenge, error) {
	var resp ChallengesResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/labs/kql-challenges", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Challenges, nil
}

// ValidateChallenge grades a query submission against a challenge
func (s *LabService) ValidateChallenge(ctx context.Context, challengeID, query string) (*lab.AnswerResult, error) {
	req := ValidateChallengeRequest{Query: query}
	var result lab.AnswerResult
	path := fmt.Sprintf("/api/v1/labs/kql-challenges/%s/validate", challengeID)
	if err := s.client.doRequest(ctx, "POST", path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset clears all injected scenario data on the backend
func (s *LabService) Reset(ctx context.Context) error {
	return s.client.doRequest(ctx, "POST", "/api/v1/labs/reset", nil, nil)
}
