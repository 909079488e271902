package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/siemlab/console/internal/domain/lab"
	"github.com/siemlab/console/internal/lab"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/validator"
	"github.com/siemlab/console/pkg/client"
)

type mockLabBackend struct {
	questions []domain.Question
}

func (m *mockLabBackend) StartScenario(_ context.Context, scenarioID string) (*client.StartScenarioResponse, error) {
	return &client.StartScenarioResponse{RunID: "run-1", ScenarioID: scenarioID, Status: "running"}, nil
}

func (m *mockLabBackend) Questions(_ context.Context, _ string) (*client.QuestionsResponse, error) {
	return &client.QuestionsResponse{Questions: m.questions}, nil
}

func (m *mockLabBackend) SubmitAnswer(_ context.Context, _, _, _ string) (*domain.AnswerResult, error) {
	return &domain.AnswerResult{Correct: true, PointsAwarded: 10, Feedback: "Correct!"}, nil
}

func (m *mockLabBackend) Challenges(_ context.Context) ([]domain.Challenge, error) {
	return nil, nil
}

func (m *mockLabBackend) ValidateChallenge(_ context.Context, _, _ string) (*domain.AnswerResult, error) {
	return &domain.AnswerResult{Correct: true, PointsAwarded: 10}, nil
}

func (m *mockLabBackend) Reset(_ context.Context) error {
	return nil
}

func newLabTestServer(backend *mockLabBackend) http.Handler {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	engine := lab.NewEngine(backend, log)
	h := NewLabHandler(engine, nil, validator.New(), log)

	r := chi.NewRouter()
	r.Post("/api/v1/labs/sessions", h.StartSession)
	r.Get("/api/v1/labs/sessions/{id}", h.GetSession)
	r.Post("/api/v1/labs/sessions/{id}/answers", h.SubmitAnswer)
	r.Post("/api/v1/labs/sessions/{id}/advance", h.Advance)
	return r
}

func startTestSession(t *testing.T, router http.Handler) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"scenario_id": "phishing-101"})
	req := httptest.NewRequest("POST", "/api/v1/labs/sessions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("start session: status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode start response: %v", err)
	}
	return resp.Data.SessionID
}

func sessionScore(t *testing.T, router http.Handler, id string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/v1/labs/sessions/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get session: status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Summary struct {
				Score int `json:"score"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	return resp.Data.Summary.Score
}

// Concurrent submissions against one session must serialize: no panic
// from shared map writes, and the question's points credited exactly
// once. Run with the race detector to cover the synchronization itself.
func TestLabHandler_ConcurrentSubmissionsScoreOnce(t *testing.T) {
	router := newLabTestServer(&mockLabBackend{
		questions: []domain.Question{
			{ID: "q1", Prompt: "Which user received the phishing email?", Points: 10},
			{ID: "q2", Prompt: "Which technique was used for execution?", Points: 10},
		},
	})
	id := startTestSession(t, router)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{"answer": "sarah.chen@contoso.com"})
			req := httptest.NewRequest("POST", "/api/v1/labs/sessions/"+id+"/answers", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("submit: status = %d", w.Code)
			}
		}()
	}
	wg.Wait()

	if got := sessionScore(t, router, id); got != 10 {
		t.Errorf("score after concurrent submissions = %d, want 10", got)
	}
}

func TestLabHandler_ConcurrentSubmitAndAdvance(t *testing.T) {
	router := newLabTestServer(&mockLabBackend{
		questions: []domain.Question{
			{ID: "q1", Prompt: "Which user received the phishing email?", Points: 10},
			{ID: "q2", Prompt: "Which technique was used for execution?", Points: 10},
		},
	})
	id := startTestSession(t, router)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{"answer": "T1204"})
			req := httptest.NewRequest("POST", "/api/v1/labs/sessions/"+id+"/answers", bytes.NewReader(body))
			router.ServeHTTP(httptest.NewRecorder(), req)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/v1/labs/sessions/"+id+"/advance", nil)
			router.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	// Both questions are worth 10; whatever interleaving happened, the
	// score can never exceed the session total.
	if got := sessionScore(t, router, id); got > 20 {
		t.Errorf("score = %d, exceeds session total 20", got)
	}
}

func TestLabHandler_SubmitAnswerRequiresAnswerField(t *testing.T) {
	router := newLabTestServer(&mockLabBackend{
		questions: []domain.Question{{ID: "q1", Prompt: "Which user received the phishing email?", Points: 10}},
	})
	id := startTestSession(t, router)

	req := httptest.NewRequest("POST", "/api/v1/labs/sessions/"+id+"/answers", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := sessionScore(t, router, id); got != 0 {
		t.Errorf("rejected submission changed the score: %d", got)
	}
}
