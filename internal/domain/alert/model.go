package alert

import "time"

// Alert represents a single detection event from a source product
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	Product     string    `json:"product"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Entity      string    `json:"entity"`
	Technique   string    `json:"mitreAttackTechnique"`
	CreatedTime time.Time `json:"createdTime"`
	ScenarioID  string    `json:"scenarioId,omitempty"`
}

// Severity levels, ordered by rank
const (
	SeverityCritical      = "Critical"
	SeverityHigh          = "High"
	SeverityMedium        = "Medium"
	SeverityLow           = "Low"
	SeverityInformational = "Informational"
)

// Alert status
const (
	StatusNew        = "New"
	StatusInProgress = "InProgress"
	StatusResolved   = "Resolved"
)

// severityRanks orders severities for sorting; higher is more severe.
var severityRanks = map[string]int{
	SeverityCritical:      4,
	SeverityHigh:          3,
	SeverityMedium:        2,
	SeverityLow:           1,
	SeverityInformational: 0,
}

// SeverityRank returns the ordering rank of a severity. Unknown severities
// rank below Informational.
func SeverityRank(severity string) int {
	if rank, ok := severityRanks[severity]; ok {
		return rank
	}
	return -1
}

// Filter contains alert filtering options
type Filter struct {
	Severity string
	Status   string
	Search   string
}
