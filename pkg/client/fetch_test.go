package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetcher_DegradesFailureToEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail": "backend unavailable"}`))
	}))
	defer srv.Close()

	f := NewFetcher(NewClient(Config{BaseURL: srv.URL}))
	ctx := context.Background()

	alerts, err := f.FetchAlerts(ctx)
	if err == nil {
		t.Error("FetchAlerts: expected error, got nil")
	}
	if alerts == nil {
		t.Fatal("FetchAlerts: collection is nil, want empty slice")
	}
	if len(alerts) != 0 {
		t.Errorf("FetchAlerts: len = %d, want 0", len(alerts))
	}

	incidents, err := f.FetchIncidents(ctx)
	if err == nil {
		t.Error("FetchIncidents: expected error, got nil")
	}
	if incidents == nil || len(incidents) != 0 {
		t.Errorf("FetchIncidents: got %v, want empty non-nil slice", incidents)
	}

	devices, err := f.FetchDevices(ctx)
	if err == nil {
		t.Error("FetchDevices: expected error, got nil")
	}
	if devices == nil || len(devices) != 0 {
		t.Errorf("FetchDevices: got %v, want empty non-nil slice", devices)
	}
}

func TestFetcher_NullBodyBecomesEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alerts": null, "total": 0}`))
	}))
	defer srv.Close()

	f := NewFetcher(NewClient(Config{BaseURL: srv.URL}))
	alerts, err := f.FetchAlerts(context.Background())
	if err != nil {
		t.Fatalf("FetchAlerts returned error: %v", err)
	}
	if alerts == nil {
		t.Fatal("collection is nil, want empty slice")
	}
}
