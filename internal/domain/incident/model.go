package incident

import "time"

// Incident represents an aggregation of alerts under one investigation.
// Snapshots are immutable-by-replacement: the only client-side writes are
// the status and assignment updates, and both are reconciled from the
// server's returned representation.
type Incident struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Severity     string    `json:"severity"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assignedTo,omitempty"`
	Description  string    `json:"description"`
	Entities     []string  `json:"entities"`
	Techniques   []string  `json:"mitreAttackTechniques"`
	AlertIDs     []string  `json:"alertIds"`
	AlertCount   int       `json:"alertCount"`
	CreatedTime  time.Time `json:"createdTime"`
	ScenarioID   string    `json:"scenarioId,omitempty"`
	ScenarioName string    `json:"scenarioName,omitempty"`
}

// Incident status. All transitions are learner-initiated and unrestricted;
// there is no enforced ordering between states.
const (
	StatusNew        = "New"
	StatusActive     = "Active"
	StatusInProgress = "InProgress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

// Statuses lists every valid incident status.
var Statuses = []string{StatusNew, StatusActive, StatusInProgress, StatusResolved, StatusClosed}

// ValidStatus reports whether s is a known incident status.
func ValidStatus(s string) bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Filter contains incident filtering options
type Filter struct {
	Severity string
	Status   string
	Search   string
}
