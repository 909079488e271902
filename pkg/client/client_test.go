package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_LoginSetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != "POST" {
			t.Errorf("unexpected method %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode login body: %v", err)
		}
		if body["username"] != "analyst" {
			t.Errorf("username = %q, want analyst", body["username"])
		}
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "tok-123",
			TokenType:   "bearer",
			Username:    "analyst",
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	resp, err := c.Auth().Login(context.Background(), "analyst", "password")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q, want tok-123", resp.AccessToken)
	}
	if c.GetToken() != "tok-123" {
		t.Errorf("client token = %q, want tok-123", c.GetToken())
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		json.NewEncoder(w).Encode(ListAlertsResponse{})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok-123"})
	if _, err := c.Alerts().List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "incident not found"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Incidents().Get(context.Background(), "INC-404")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "incident not found" {
		t.Errorf("Message = %q, want incident not found", apiErr.Message)
	}
	if !apiErr.IsNotFound() {
		t.Error("IsNotFound() = false, want true")
	}
}

func TestClient_ErrorFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Alerts().List(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("Message = %q, want raw body", apiErr.Message)
	}
	if !apiErr.IsServerError() {
		t.Error("IsServerError() = false, want true")
	}
}

func TestIncidentService_UpdateReturnsServerIncident(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/v1/sentinel/incidents/INC-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req UpdateIncidentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if req.Status != "Resolved" {
			t.Errorf("status = %q, want Resolved", req.Status)
		}
		// The server may normalize fields; the response body wins.
		w.Write([]byte(`{"id": "INC-1", "title": "Phishing wave (normalized)", "status": "Resolved", "assignedTo": "morgan"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	inc, err := c.Incidents().Update(context.Background(), "INC-1", UpdateIncidentRequest{
		Status:     "Resolved",
		AssignedTo: "morgan",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if inc.Title != "Phishing wave (normalized)" {
		t.Errorf("Title = %q, want server-normalized title", inc.Title)
	}
}

func TestLabService_SubmitAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/labs/scenarios/phishing-101/answer" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req SubmitAnswerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if req.QuestionID != "q1" || req.Answer != "T1566" {
			t.Errorf("unexpected submission %+v", req)
		}
		w.Write([]byte(`{"correct": true, "points_awarded": 10, "feedback": "Spot on."}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	res, err := c.Labs().SubmitAnswer(context.Background(), "phishing-101", "q1", "T1566")
	if err != nil {
		t.Fatalf("SubmitAnswer returned error: %v", err)
	}
	if !res.Correct || res.PointsAwarded != 10 {
		t.Errorf("unexpected verdict %+v", res)
	}
}

func TestHuntingService_QueryErrorInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Syntax errors come back with a 200 status.
		w.Write([]byte(`{"columns": [], "rows": [], "row_count": 0, "error": "unknown table SigninLogz"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	result, err := c.Hunting().Query(context.Background(), "SigninLogz | take 5")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if !result.Failed() {
		t.Error("Failed() = false, want true")
	}
}
