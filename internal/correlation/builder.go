// Package correlation builds derived incident views by joining the raw
// alert and incident collections. Views are pure functions of their
// inputs and are recomputed from scratch on every refresh; nothing in
// this package holds state.
package correlation

import (
	"strings"

	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/incident"
)

// Entity kinds
const (
	EntityIdentity = "identity"
	EntityDevice   = "device"
)

// Device subtypes
const (
	DeviceServer      = "server"
	DeviceWorkstation = "workstation"
)

// Entity is a classified incident entity
type Entity struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Subtype string `json:"subtype,omitempty"` // devices only
}

// Technique pairs a MITRE technique ID with its resolved tactic label
type Technique struct {
	ID     string `json:"id"`
	Tactic string `json:"tactic"`
}

// IncidentView is the derived presentation model for one incident: the
// incident joined with its member alerts, classified entities, and
// technique labels.
type IncidentView struct {
	Incident   incident.Incident `json:"incident"`
	Alerts     []alert.Alert     `json:"alerts"`
	AlertCount int               `json:"alertCount"`
	Entities   []Entity          `json:"entities"`
	Techniques []Technique       `json:"techniques"`
}

// ClassifyEntity classifies an entity name as an identity or a device.
// Any name containing "@" is an identity; everything else is a device.
// This misclassifies UPN-less account names as devices, which is
// acceptable for the simulated data set where identities are always
// email-shaped. Device names with an "SRV-" prefix are servers.
func ClassifyEntity(name string) Entity {
	if strings.Contains(name, "@") {
		return Entity{Name: name, Kind: EntityIdentity}
	}
	subtype := DeviceWorkstation
	if strings.HasPrefix(strings.ToUpper(name), "SRV-") {
		subtype = DeviceServer
	}
	return Entity{Name: name, Kind: EntityDevice, Subtype: subtype}
}

// Correlate joins one incident with the alert collection. Member alerts
// are matched by ID and returned in the alert collection's order, not the
// order of the incident's ID list, so the view is stable regardless of
// which collection arrived first. Duplicate referenced IDs collapse to a
// single membership; referenced alerts absent from the collection are
// simply not included.
func Correlate(inc incident.Incident, alerts []alert.Alert) IncidentView {
	wanted := make(map[string]bool, len(inc.AlertIDs))
	for _, id := range inc.AlertIDs {
		wanted[id] = true
	}

	members := make([]alert.Alert, 0, len(wanted))
	for _, a := range alerts {
		if wanted[a.ID] {
			members = append(members, a)
			delete(wanted, a.ID)
		}
	}

	entities := make([]Entity, 0, len(inc.Entities))
	for _, name := range inc.Entities {
		entities = append(entities, ClassifyEntity(name))
	}

	techniques := make([]Technique, 0, len(inc.Techniques))
	for _, id := range inc.Techniques {
		techniques = append(techniques, Technique{ID: id, Tactic: TacticFor(id)})
	}

	return IncidentView{
		Incident:   inc,
		Alerts:     members,
		AlertCount: len(members),
		Entities:   entities,
		Techniques: techniques,
	}
}

// BuildViews correlates every incident against the alert collection,
// preserving incident collection order.
func BuildViews(incidents []incident.Incident, alerts []alert.Alert) []IncidentView {
	views := make([]IncidentView, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, Correlate(inc, alerts))
	}
	return views
}
