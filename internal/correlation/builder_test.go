package correlation

import (
	"testing"

	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/incident"
)

func TestClassifyEntity(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		wantKind    string
		wantSubtype string
	}{
		{
			name:     "email address is an identity",
			entity:   "sarah.chen@contoso.com",
			wantKind: EntityIdentity,
		},
		{
			name:        "hostname is a workstation",
			entity:      "WS-FINANCE-07",
			wantKind:    EntityDevice,
			wantSubtype: DeviceWorkstation,
		},
		{
			name:        "SRV prefix is a server",
			entity:      "SRV-DC-01",
			wantKind:    EntityDevice,
			wantSubtype: DeviceServer,
		},
		{
			name:        "SRV prefix match is case-insensitive",
			entity:      "srv-web-02",
			wantKind:    EntityDevice,
			wantSubtype: DeviceServer,
		},
		{
			name:     "identity check wins over SRV prefix",
			entity:   "SRV-admin@contoso.com",
			wantKind: EntityIdentity,
		},
		{
			name:        "bare account name classifies as device",
			entity:      "jdoe",
			wantKind:    EntityDevice,
			wantSubtype: DeviceWorkstation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyEntity(tt.entity)
			if got.Kind != tt.wantKind {
				t.Errorf("ClassifyEntity(%q).Kind = %q, want %q", tt.entity, got.Kind, tt.wantKind)
			}
			if got.Subtype != tt.wantSubtype {
				t.Errorf("ClassifyEntity(%q).Subtype = %q, want %q", tt.entity, got.Subtype, tt.wantSubtype)
			}
			if got.Name != tt.entity {
				t.Errorf("ClassifyEntity(%q).Name = %q", tt.entity, got.Name)
			}
		})
	}
}

func TestCorrelatePreservesAlertCollectionOrder(t *testing.T) {
	alerts := []alert.Alert{
		{ID: "alert-1", Title: "Phishing email delivered"},
		{ID: "alert-2", Title: "Suspicious sign-in"},
		{ID: "alert-3", Title: "PowerShell execution"},
		{ID: "alert-4", Title: "Unrelated noise"},
	}
	inc := incident.Incident{
		ID:       "inc-1",
		AlertIDs: []string{"alert-3", "alert-1"}, // reversed relative to collection
	}

	view := Correlate(inc, alerts)

	if len(view.Alerts) != 2 {
		t.Fatalf("expected 2 member alerts, got %d", len(view.Alerts))
	}
	if view.Alerts[0].ID != "alert-1" || view.Alerts[1].ID != "alert-3" {
		t.Errorf("member order = [%s %s], want collection order [alert-1 alert-3]",
			view.Alerts[0].ID, view.Alerts[1].ID)
	}
	if view.AlertCount != 2 {
		t.Errorf("AlertCount = %d, want 2", view.AlertCount)
	}
}

func TestCorrelateMissingAndDuplicateReferences(t *testing.T) {
	alerts := []alert.Alert{
		{ID: "alert-1"},
		{ID: "alert-1"}, // duplicate row in the collection
		{ID: "alert-2"},
	}
	inc := incident.Incident{
		ID:       "inc-1",
		AlertIDs: []string{"alert-1", "alert-1", "alert-9"},
	}

	view := Correlate(inc, alerts)

	if view.AlertCount != 1 {
		t.Errorf("AlertCount = %d, want 1 distinct member", view.AlertCount)
	}
	if len(view.Alerts) != 1 || view.Alerts[0].ID != "alert-1" {
		t.Errorf("unexpected members: %+v", view.Alerts)
	}
}

func TestCorrelateEmptyCollections(t *testing.T) {
	inc := incident.Incident{ID: "inc-1", AlertIDs: []string{"alert-1"}}

	view := Correlate(inc, nil)
	if len(view.Alerts) != 0 || view.AlertCount != 0 {
		t.Errorf("expected empty view against nil alert collection, got %+v", view)
	}

	view = Correlate(incident.Incident{ID: "inc-2"}, []alert.Alert{{ID: "alert-1"}})
	if len(view.Alerts) != 0 {
		t.Errorf("incident with no references should have no members, got %+v", view.Alerts)
	}
}

func TestCorrelateClassifiesEntitiesAndTechniques(t *testing.T) {
	inc := incident.Incident{
		ID:         "inc-1",
		Entities:   []string{"mallory@contoso.com", "SRV-DC-01", "WS-SALES-11"},
		Techniques: []string{"T1566.001", "T9999"},
	}

	view := Correlate(inc, nil)

	wantEntities := []Entity{
		{Name: "mallory@contoso.com", Kind: EntityIdentity},
		{Name: "SRV-DC-01", Kind: EntityDevice, Subtype: DeviceServer},
		{Name: "WS-SALES-11", Kind: EntityDevice, Subtype: DeviceWorkstation},
	}
	if len(view.Entities) != len(wantEntities) {
		t.Fatalf("got %d entities, want %d", len(view.Entities), len(wantEntities))
	}
	for i, want := range wantEntities {
		if view.Entities[i] != want {
			t.Errorf("entity[%d] = %+v, want %+v", i, view.Entities[i], want)
		}
	}

	wantTechniques := []Technique{
		{ID: "T1566.001", Tactic: "Initial Access"},
		{ID: "T9999", Tactic: UnknownTactic},
	}
	for i, want := range wantTechniques {
		if view.Techniques[i] != want {
			t.Errorf("technique[%d] = %+v, want %+v", i, view.Techniques[i], want)
		}
	}
}

func TestBuildViewsOrderIndependence(t *testing.T) {
	alertsFirst := []alert.Alert{{ID: "a1"}, {ID: "a2"}}
	incidents := []incident.Incident{
		{ID: "inc-1", AlertIDs: []string{"a2", "a1"}},
		{ID: "inc-2", AlertIDs: []string{"a1"}},
	}

	views := BuildViews(incidents, alertsFirst)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].Incident.ID != "inc-1" || views[1].Incident.ID != "inc-2" {
		t.Errorf("views must preserve incident collection order")
	}

	// Rebuilding from the same inputs yields the same join regardless of
	// which collection was fetched first in the calling code.
	again := BuildViews(incidents, alertsFirst)
	for i := range views {
		if len(views[i].Alerts) != len(again[i].Alerts) {
			t.Errorf("rebuild changed view %d", i)
		}
	}
}
