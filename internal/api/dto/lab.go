package dto

// StartSessionRequest opens a graded session for a scenario
type StartSessionRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// SubmitAnswerRequest answers the session's current question
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// SubmitChallengeRequest submits a query against a KQL challenge
type SubmitChallengeRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	Query       string `json:"query" validate:"required"`
}
