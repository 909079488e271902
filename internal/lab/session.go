// Package lab runs graded training sessions: scenario question rounds
// and KQL challenge rounds. Grading itself happens on the backend; this
// package owns session state, score accounting, and progress.
package lab

import (
	domain "github.com/siemlab/console/internal/domain/lab"
)

// Result records the latest grading verdict for one question or
// challenge, plus the answer that produced it.
type Result struct {
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"points_awarded"`
	Feedback      string `json:"feedback"`
}

// Session is one learner's run through a scenario's questions. All
// progress state lives here; nothing is global. Completion is always
// derived from Results, never stored.
type Session struct {
	ScenarioID  string            `json:"scenario_id"`
	RunID       string            `json:"run_id"`
	Questions   []domain.Question `json:"questions"`
	TotalPoints int               `json:"total_points"`
	Cursor      int               `json:"cursor"`
	Score       int               `json:"score"`
	Results     map[string]Result `json:"results"`
	ShowHint    bool              `json:"show_hint"`

	// scored marks questions whose points have been credited. A question
	// enters this set on its first submission and never leaves, so
	// resubmissions can update Results without touching Score.
	scored map[string]bool
}

// Current returns the question at the cursor
func (s *Session) Current() (domain.Question, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.Cursor], true
}

// Answered reports how many questions have a recorded result
func (s *Session) Answered() int {
	return len(s.Results)
}

// Complete reports whether every question has a recorded result
func (s *Session) Complete() bool {
	if len(s.Questions) == 0 {
		return false
	}
	for _, q := range s.Questions {
		if _, ok := s.Results[q.ID]; !ok {
			return false
		}
	}
	return true
}

// record stores a grading verdict. Points are credited only on the first
// submission for a question; later submissions replace the visible
// result but never change the score.
func (s *Session) record(questionID string, res Result) {
	if s.scored == nil {
		s.scored = make(map[string]bool)
	}
	if !s.scored[questionID] {
		s.scored[questionID] = true
		s.Score += res.PointsAwarded
	}
	s.Results[questionID] = res
}

// ChallengeSession is one learner's run through the KQL challenge
// catalog. Challenges have no cursor; the learner picks any challenge in
// any order.
type ChallengeSession struct {
	Challenges  []domain.Challenge `json:"challenges"`
	TotalPoints int               `json:"total_points"`
	Score       int               `json:"score"`
	Results     map[string]Result `json:"results"`

	scored map[string]bool
}

// Find returns the challenge with the given ID
func (s *ChallengeSession) Find(id string) (domain.Challenge, bool) {
	for _, c := range s.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Challenge{}, false
}

// Complete reports whether every challenge has a recorded result
func (s *ChallengeSession) Complete() bool {
	if len(s.Challenges) == 0 {
		return false
	}
	for _, c := range s.Challenges {
		if _, ok := s.Results[c.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *ChallengeSession) record(challengeID string, res Result) {
	if s.scored == nil {
		s.scored = make(map[string]bool)
	}
	if !s.scored[challengeID] {
		s.scored[challengeID] = true
		s.Score += res.PointsAwarded
	}
	s.Results[challengeID] = res
}
