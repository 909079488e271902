package lab

import (
	"context"
	"math"
	"strings"

	domain "github.com/siemlab/console/internal/domain/lab"
	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/metrics"
	"github.com/siemlab/console/pkg/client"
)

// Backend is the grading surface the engine needs from the training
// backend. *client.LabService satisfies it.
type Backend interface {
	StartScenario(ctx context.Context, scenarioID string) (*client.StartScenarioResponse, error)
	Questions(ctx context.Context, scenarioID string) (*client.QuestionsResponse, error)
	SubmitAnswer(ctx context.Context, scenarioID, questionID, answer string) (*domain.AnswerResult, error)
	Challenges(ctx context.Context) ([]domain.Challenge, error)
	ValidateChallenge(ctx context.Context, challengeID, query string) (*domain.AnswerResult, error)
	Reset(ctx context.Context) error
}

// Engine coordinates session lifecycle and grading against the backend
type Engine struct {
	backend Backend
	log     *logger.Logger
}

// NewEngine creates a scoring engine over a lab backend
func NewEngine(backend Backend, log *logger.Logger) *Engine {
	return &Engine{backend: backend, log: log}
}

// Start injects the scenario into the environment and opens a session
// over its questions. Total points are computed once from the question
// set and never recomputed.
func (e *Engine) Start(ctx context.Context, scenarioID string) (*Session, error) {
	started, err := e.backend.StartScenario(ctx, scenarioID)
	if err != nil {
		return nil, errors.BackendError("failed to start scenario", err)
	}

	qs, err := e.backend.Questions(ctx, scenarioID)
	if err != nil {
		return nil, errors.BackendError("failed to load scenario questions", err)
	}

	total := 0
	for _, q := range qs.Questions {
		total += q.Points
	}

	e.log.WithFields(map[string]interface{}{
		"scenario_id": scenarioID,
		"run_id":      started.RunID,
		"questions":   len(qs.Questions),
	}).Info("scenario session started")
	metrics.SessionOpened()

	return &Session{
		ScenarioID:  scenarioID,
		RunID:       started.RunID,
		Questions:   qs.Questions,
		TotalPoints: total,
		Results:     make(map[string]Result),
	}, nil
}

// Submit grades the answer to the question at the session cursor. Blank
// answers are rejected locally and never sent to the backend.
// Resubmitting a question replaces its recorded result but credits no
// further points.
func (e *Engine) Submit(ctx context.Context, s *Session, answer string) (*Result, error) {
	q, ok := s.Current()
	if !ok {
		return nil, errors.BadRequest("no current question to answer")
	}
	if strings.TrimSpace(answer) == "" {
		return nil, errors.ValidationError("answer must not be blank", nil)
	}

	verdict, err := e.backend.SubmitAnswer(ctx, s.ScenarioID, q.ID, answer)
	if err != nil {
		return nil, errors.BackendError("answer grading failed", err)
	}

	res := Result{
		Answer:        answer,
		Correct:       verdict.Correct,
		PointsAwarded: clampAward(verdict, q.Points),
		Feedback:      verdict.Feedback,
	}
	s.record(q.ID, res)
	metrics.RecordSubmission("question", verdict.Correct)
	return &res, nil
}

// Advance moves the cursor to the next question. It refuses to move past
// an unanswered question and past the end of the set, and clears the
// hint visibility for the new question.
func (e *Engine) Advance(s *Session) error {
	q, ok := s.Current()
	if !ok {
		return errors.BadRequest("no current question")
	}
	if _, answered := s.Results[q.ID]; !answered {
		return errors.BadRequest("answer the current question before advancing")
	}
	if s.Cursor+1 >= len(s.Questions) {
		return errors.BadRequest("already at the last question")
	}
	s.Cursor++
	s.ShowHint = false
	return nil
}

// Close discards a session
func (e *Engine) Close(_ *Session) {
	metrics.SessionClosed()
}

// clampAward bounds a grading verdict's points to the question or
// challenge value. An incorrect verdict never credits points, so the
// cumulative score cannot exceed the session total even if the backend
// over-awards.
func clampAward(verdict *domain.AnswerResult, max int) int {
	if !verdict.Correct || verdict.PointsAwarded < 0 {
		return 0
	}
	if verdict.PointsAwarded > max {
		return max
	}
	return verdict.PointsAwarded
}

// StartChallenges opens a session over the KQL challenge catalog
func (e *Engine) StartChallenges(ctx context.Context) (*ChallengeSession, error) {
	challenges, err := e.backend.Challenges(ctx)
	if err != nil {
		return nil, errors.BackendError("failed to load challenges", err)
	}
	total := 0
	for _, c := range challenges {
		total += c.Points
	}
	return &ChallengeSession{
		Challenges:  challenges,
		TotalPoints: total,
		Results:     make(map[string]Result),
	}, nil
}

// SubmitChallenge validates a query against a challenge under the same
// first-submission scoring rule as questions.
func (e *Engine) SubmitChallenge(ctx context.Context, s *ChallengeSession, challengeID, query string) (*Result, error) {
	c, ok := s.Find(challengeID)
	if !ok {
		return nil, errors.NotFound("challenge")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.ValidationError("query must not be blank", nil)
	}

	verdict, err := e.backend.ValidateChallenge(ctx, challengeID, query)
	if err != nil {
		return nil, errors.BackendError("challenge validation failed", err)
	}

	res := Result{
		Answer:        query,
		Correct:       verdict.Correct,
		PointsAwarded: clampAward(verdict, c.Points),
		Feedback:      verdict.Feedback,
	}
	s.record(challengeID, res)
	metrics.RecordSubmission("challenge", verdict.Correct)
	return &res, nil
}

// Reset clears all injected scenario data on the backend. Open sessions
// are the caller's to discard.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.backend.Reset(ctx); err != nil {
		return errors.BackendError("environment reset failed", err)
	}
	e.log.Info("training environment reset")
	return nil
}

// Feedback messages by score band
const (
	MessageStrong     = "Excellent work! You have a strong grasp of this attack scenario."
	MessageDeveloping = "Good effort! Review the alerts and incidents to strengthen your knowledge."
	MessagePractice   = "Keep practicing! Re-run the scenario and investigate the alerts more carefully."
	MessageNoPoints   = "This scenario has no graded questions."
)

// Summary is the derived progress report for a session
type Summary struct {
	Score       int    `json:"score"`
	TotalPoints int    `json:"total_points"`
	Percent     int    `json:"percent"`
	Answered    int    `json:"answered"`
	Total       int    `json:"total"`
	Complete    bool   `json:"complete"`
	Message     string `json:"message"`
}

// Summarize derives the progress report for a question session. Percent
// is rounded to the nearest integer; 80 and above reads as strong, 50 to
// 79 as developing. A scenario worth zero points has no meaningful
// percentage and reports as such.
func Summarize(s *Session) Summary {
	sum := Summary{
		Score:       s.Score,
		TotalPoints: s.TotalPoints,
		Answered:    s.Answered(),
		Total:       len(s.Questions),
		Complete:    s.Complete(),
	}
	if s.TotalPoints <= 0 {
		sum.Message = MessageNoPoints
		return sum
	}
	sum.Percent = int(math.Round(float64(s.Score) / float64(s.TotalPoints) * 100))
	sum.Message = messageFor(sum.Percent)
	return sum
}

// SummarizeChallenges derives the progress report for a challenge session
func SummarizeChallenges(s *ChallengeSession) Summary {
	sum := Summary{
		Score:       s.Score,
		TotalPoints: s.TotalPoints,
		Answered:    len(s.Results),
		Total:       len(s.Challenges),
		Complete:    s.Complete(),
	}
	if s.TotalPoints <= 0 {
		sum.Message = MessageNoPoints
		return sum
	}
	sum.Percent = int(math.Round(float64(s.Score) / float64(s.TotalPoints) * 100))
	sum.Message = messageFor(sum.Percent)
	return sum
}

func messageFor(percent int) string {
	switch {
	case percent >= 80:
		return MessageStrong
	case percent >= 50:
		return MessageDeveloping
	default:
		return MessagePractice
	}
}
