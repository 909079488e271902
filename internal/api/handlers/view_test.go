package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/device"
	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/view"
	"github.com/siemlab/console/internal/workflow"
	"github.com/siemlab/console/pkg/client"
)

type stubFetcher struct {
	alerts    []alert.Alert
	incidents []incident.Incident
	devices   []device.Device
}

func (f *stubFetcher) FetchAlerts(ctx context.Context) ([]alert.Alert, error) {
	return f.alerts, nil
}

func (f *stubFetcher) FetchIncidents(ctx context.Context) ([]incident.Incident, error) {
	return f.incidents, nil
}

func (f *stubFetcher) FetchDevices(ctx context.Context) ([]device.Device, error) {
	return f.devices, nil
}

func newViewTestServer(t *testing.T, f *stubFetcher) http.Handler {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	store := view.NewStore(f, log)
	store.Refresh(context.Background())

	controller := workflow.NewController(&mockUpdater{
		updateFn: func(id string, req client.UpdateIncidentRequest) (*incident.Incident, error) {
			return &incident.Incident{ID: id, Status: req.Status}, nil
		},
	}, log)
	controller.Load(store.Incidents())

	h := NewViewHandler(store, controller, log)
	r := chi.NewRouter()
	r.Get("/api/v1/alerts", h.ListAlerts)
	r.Get("/api/v1/alerts/{id}", h.GetAlert)
	r.Get("/api/v1/incidents", h.ListIncidents)
	r.Get("/api/v1/incidents/{id}", h.GetIncident)
	return r
}

func TestViewHandler_ListAlertsFiltered(t *testing.T) {
	router := newViewTestServer(t, &stubFetcher{
		alerts: []alert.Alert{
			{ID: "a1", Title: "Suspicious sign-in", Severity: alert.SeverityHigh},
			{ID: "a2", Title: "Malware detected", Severity: alert.SeverityCritical},
			{ID: "a3", Title: "Port scan", Severity: alert.SeverityHigh},
		},
	})

	tests := []struct {
		name      string
		query     string
		wantTotal int
	}{
		{"no filters returns everything", "", 3},
		{"severity facet", "?severity=High", 2},
		{"all sentinel is identity", "?severity=All", 3},
		{"search", "?search=malware", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/alerts"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var resp struct {
				Data struct {
					Total int `json:"total"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Data.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", resp.Data.Total, tt.wantTotal)
			}
		})
	}
}

func TestViewHandler_GetIncidentView(t *testing.T) {
	router := newViewTestServer(t, &stubFetcher{
		alerts: []alert.Alert{
			{ID: "a1", Title: "Phishing email delivered", Technique: "T1566"},
			{ID: "a2", Title: "Credential harvesting page", Technique: "T1110"},
		},
		incidents: []incident.Incident{
			{
				ID:         "INC-1",
				Title:      "Phishing campaign",
				AlertIDs:   []string{"a2", "a1"},
				Entities:   []string{"jdoe@contoso.com", "SRV-DC01"},
				Techniques: []string{"T1566"},
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/v1/incidents/INC-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			AlertCount int `json:"alertCount"`
			Alerts     []struct {
				ID string `json:"id"`
			} `json:"alerts"`
			Entities []struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
			} `json:"entities"`
			Techniques []struct {
				ID     string `json:"id"`
				Tactic string `json:"tactic"`
			} `json:"techniques"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.AlertCount != 2 {
		t.Errorf("alertCount = %d, want 2", resp.Data.AlertCount)
	}
	// Member alerts follow the alert collection's order, not the ID list's.
	if resp.Data.Alerts[0].ID != "a1" {
		t.Errorf("first member = %s, want a1", resp.Data.Alerts[0].ID)
	}
	if resp.Data.Entities[0].Kind != "identity" {
		t.Errorf("entity kind = %s, want identity", resp.Data.Entities[0].Kind)
	}
	if resp.Data.Techniques[0].Tactic != "Initial Access" {
		t.Errorf("tactic = %s, want Initial Access", resp.Data.Techniques[0].Tactic)
	}
}

func TestViewHandler_GetAlertNotFound(t *testing.T) {
	router := newViewTestServer(t, &stubFetcher{})

	req := httptest.NewRequest("GET", "/api/v1/alerts/a-missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
