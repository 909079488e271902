package device

import "time"

// Device represents an onboarded endpoint in the device inventory
type Device struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Owner            string    `json:"owner,omitempty"`
	OSPlatform       string    `json:"osPlatform"`
	OSVersion        string    `json:"osVersion,omitempty"`
	IPAddress        string    `json:"ipAddress"`
	RiskLevel        string    `json:"riskLevel"`
	OnboardingStatus string    `json:"onboardingStatus"`
	Tags             []string  `json:"tags,omitempty"`
	ActiveAlerts     int       `json:"activeAlerts"`
	FirstSeen        time.Time `json:"firstSeen,omitempty"`
}

// Risk levels
const (
	RiskCritical = "Critical"
	RiskHigh     = "High"
	RiskMedium   = "Medium"
	RiskLow      = "Low"
)

// Onboarding status
const (
	Onboarded      = "Onboarded"
	CanBeOnboarded = "CanBeOnboarded"
)
