package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/validator"
	"github.com/siemlab/console/internal/workflow"
	"github.com/siemlab/console/pkg/client"
)

type mockUpdater struct {
	calls    []client.UpdateIncidentRequest
	updateFn func(id string, req client.UpdateIncidentRequest) (*incident.Incident, error)
}

func (m *mockUpdater) Update(ctx context.Context, id string, req client.UpdateIncidentRequest) (*incident.Incident, error) {
	m.calls = append(m.calls, req)
	return m.updateFn(id, req)
}

func newIncidentTestServer(updater *mockUpdater, incidents []incident.Incident) (http.Handler, *workflow.Controller) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	controller := workflow.NewController(updater, log)
	controller.Load(incidents)

	h := NewIncidentHandler(controller, validator.New(), log)
	r := chi.NewRouter()
	r.Patch("/api/v1/incidents/{id}", h.Update)
	return r, controller
}

func TestIncidentHandler_Update(t *testing.T) {
	updater := &mockUpdater{
		updateFn: func(id string, req client.UpdateIncidentRequest) (*incident.Incident, error) {
			return &incident.Incident{ID: id, Title: "Phishing wave", Status: req.Status, AssignedTo: req.AssignedTo}, nil
		},
	}
	router, controller := newIncidentTestServer(updater, []incident.Incident{
		{ID: "INC-1", Title: "Phishing wave", Status: incident.StatusNew},
	})

	body, _ := json.Marshal(map[string]interface{}{
		"status":     "Resolved",
		"assignedTo": "morgan",
	})
	req := httptest.NewRequest("PATCH", "/api/v1/incidents/INC-1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if len(updater.calls) != 1 {
		t.Fatalf("backend called %d times, want 1", len(updater.calls))
	}
	if updater.calls[0].AssignedTo != "morgan" {
		t.Errorf("AssignedTo sent = %q, want morgan", updater.calls[0].AssignedTo)
	}

	snap, ok := controller.Get("INC-1")
	if !ok {
		t.Fatal("incident not tracked after update")
	}
	if snap.Status != incident.StatusResolved {
		t.Errorf("snapshot status = %q, want Resolved", snap.Status)
	}
}

func TestIncidentHandler_UpdateRejectsUnknownStatus(t *testing.T) {
	updater := &mockUpdater{
		updateFn: func(id string, req client.UpdateIncidentRequest) (*incident.Incident, error) {
			t.Fatal("backend must not be called for an invalid status")
			return nil, nil
		},
	}
	router, _ := newIncidentTestServer(updater, []incident.Incident{
		{ID: "INC-1", Status: incident.StatusNew},
	})

	body, _ := json.Marshal(map[string]string{"status": "Reopened"})
	req := httptest.NewRequest("PATCH", "/api/v1/incidents/INC-1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(updater.calls) != 0 {
		t.Errorf("backend called %d times, want 0", len(updater.calls))
	}
}

func TestIncidentHandler_UpdateUnknownIncident(t *testing.T) {
	updater := &mockUpdater{
		updateFn: func(id string, req client.UpdateIncidentRequest) (*incident.Incident, error) {
			return &incident.Incident{ID: id}, nil
		},
	}
	router, _ := newIncidentTestServer(updater, nil)

	body, _ := json.Marshal(map[string]string{"status": "Active"})
	req := httptest.NewRequest("PATCH", "/api/v1/incidents/INC-404", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
