// Package filter provides pure filtering helpers over the domain
// collections. Filters never mutate their input; the "All" sentinel and
// the empty search term are identity filters.
package filter

import (
	"strings"

	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/domain/device"
	"github.com/siemlab/console/internal/domain/incident"
)

// All matches every value of a facet
const All = "All"

// matches reports whether a facet value passes a selected filter value
func matches(selected, value string) bool {
	return selected == "" || selected == All || selected == value
}

// containsFold reports whether any field contains the term,
// case-insensitively. An empty term matches everything.
func containsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Alerts filters the alert collection by severity, status, and free text
// over title, description, and entity.
func Alerts(alerts []alert.Alert, f alert.Filter) []alert.Alert {
	out := make([]alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !matches(f.Severity, a.Severity) {
			continue
		}
		if !matches(f.Status, a.Status) {
			continue
		}
		if !containsFold(f.Search, a.Title, a.Description, a.Entity) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Incidents filters the incident collection by severity, status, and
// free text over title, description, and assignee.
func Incidents(incidents []incident.Incident, f incident.Filter) []incident.Incident {
	out := make([]incident.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if !matches(f.Severity, inc.Severity) {
			continue
		}
		if !matches(f.Status, inc.Status) {
			continue
		}
		if !containsFold(f.Search, inc.Title, inc.Description, inc.AssignedTo) {
			continue
		}
		out = append(out, inc)
	}
	return out
}

// DeviceFilter contains device inventory filtering options
type DeviceFilter struct {
	RiskLevel string
	Search    string
}

// Devices filters the device inventory by risk level and free text over
// name, owner, and IP address.
func Devices(devices []device.Device, f DeviceFilter) []device.Device {
	out := make([]device.Device, 0, len(devices))
	for _, d := range devices {
		if !matches(f.RiskLevel, d.RiskLevel) {
			continue
		}
		if !containsFold(f.Search, d.Name, d.Owner, d.IPAddress) {
			continue
		}
		out = append(out, d)
	}
	return out
}
