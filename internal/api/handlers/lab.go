package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/siemlab/console/internal/api/dto"
	domain "github.com/siemlab/console/internal/domain/lab"
	"github.com/siemlab/console/internal/lab"
	"github.com/siemlab/console/internal/pkg/errors"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/utils"
	"github.com/siemlab/console/internal/pkg/validator"
)

// Catalog lists the available scenarios. *client.LabService satisfies it.
type Catalog interface {
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
}

// sessionEntry serializes access to one session. The handler mutex only
// guards the maps; engine calls mutate the session itself, so each entry
// carries its own lock, held from lookup until the response is written.
type sessionEntry struct {
	mu      sync.Mutex
	session *lab.Session
}

type challengeEntry struct {
	mu      sync.Mutex
	session *lab.ChallengeSession
}

// LabHandler serves scenario sessions and challenge sessions. Sessions
// are held in memory keyed by a generated ID; they do not survive a
// gateway restart, which is fine for a training console.
type LabHandler struct {
	engine    *lab.Engine
	catalog   Catalog
	validator *validator.Validator
	logger    *logger.Logger

	mu         sync.Mutex
	sessions   map[string]*sessionEntry
	challenges map[string]*challengeEntry
}

// NewLabHandler creates a new lab handler
func NewLabHandler(engine *lab.Engine, catalog Catalog, v *validator.Validator, log *logger.Logger) *LabHandler {
	return &LabHandler{
		engine:     engine,
		catalog:    catalog,
		validator:  v,
		logger:     log,
		sessions:   make(map[string]*sessionEntry),
		challenges: make(map[string]*challengeEntry),
	}
}

// sessionResponse pairs a session with its derived summary
type sessionResponse struct {
	SessionID string       `json:"session_id"`
	Session   *lab.Session `json:"session"`
	Summary   lab.Summary  `json:"summary"`
}

// ListScenarios returns the scenario catalog
func (h *LabHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.catalog.Scenarios(r.Context())
	if err != nil {
		writeAppError(w, errors.BackendError("failed to list scenarios", err))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"scenarios": scenarios,
		"total":     len(scenarios),
	})
}

// StartSession starts a scenario and opens a graded session over it
func (h *LabHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := validateDTO(h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	session, err := h.engine.Start(r.Context(), req.ScenarioID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	id := uuid.New().String()
	e := &sessionEntry{session: session}
	e.mu.Lock()
	defer e.mu.Unlock()
	h.mu.Lock()
	h.sessions[id] = e
	h.mu.Unlock()

	utils.WriteSuccess(w, http.StatusCreated, sessionResponse{
		SessionID: id,
		Session:   session,
		Summary:   lab.Summarize(session),
	})
}

func (h *LabHandler) session(id string) (*sessionEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sessions[id]
	return e, ok
}

// GetSession returns a session and its summary
func (h *LabHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.session(id)
	if !ok {
		utils.WriteError(w, errors.NotFound("session"))
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	utils.WriteSuccess(w, http.StatusOK, sessionResponse{SessionID: id, Session: e.session, Summary: lab.Summarize(e.session)})
}

// SubmitAnswer grades an answer to the session's current question
func (h *LabHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.session(id)
	if !ok {
		utils.WriteError(w, errors.NotFound("session"))
		return
	}

	var req dto.SubmitAnswerRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := validateDTO(h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	result, err := h.engine.Submit(r.Context(), e.session, req.Answer)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"result":  result,
		"summary": lab.Summarize(e.session),
	})
}

// Advance moves the session to the next question
func (h *LabHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.session(id)
	if !ok {
		utils.WriteError(w, errors.NotFound("session"))
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := h.engine.Advance(e.session); err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, sessionResponse{SessionID: id, Session: e.session, Summary: lab.Summarize(e.session)})
}

// CloseSession discards a session
func (h *LabHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	e, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if !ok {
		utils.WriteError(w, errors.NotFound("session"))
		return
	}
	// Wait for any in-flight request on this session to finish.
	e.mu.Lock()
	defer e.mu.Unlock()
	h.engine.Close(e.session)
	utils.WriteSuccessWithMessage(w, http.StatusOK, "session closed", nil)
}

// StartChallengeSession opens a session over the KQL challenge catalog
func (h *LabHandler) StartChallengeSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.engine.StartChallenges(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	id := uuid.New().String()
	e := &challengeEntry{session: session}
	e.mu.Lock()
	defer e.mu.Unlock()
	h.mu.Lock()
	h.challenges[id] = e
	h.mu.Unlock()

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"session_id": id,
		"session":    session,
		"summary":    lab.SummarizeChallenges(session),
	})
}

// SubmitChallenge validates a query against a challenge in the session
func (h *LabHandler) SubmitChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	e, ok := h.challenges[id]
	h.mu.Unlock()
	if !ok {
		utils.WriteError(w, errors.NotFound("session"))
		return
	}

	var req dto.SubmitChallengeRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if appErr := validateDTO(h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	result, err := h.engine.SubmitChallenge(r.Context(), e.session, req.ChallengeID, req.Query)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"result":  result,
		"summary": lab.SummarizeChallenges(e.session),
	})
}

// Reset clears backend scenario data and discards all local sessions
func (h *LabHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Reset(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}

	h.mu.Lock()
	for id, e := range h.sessions {
		h.engine.Close(e.session)
		delete(h.sessions, id)
	}
	h.challenges = make(map[string]*challengeEntry)
	h.mu.Unlock()

	utils.WriteSuccessWithMessage(w, http.StatusOK, "training environment reset", nil)
}
