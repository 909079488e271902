package dto

// UpdateIncidentRequest changes an incident's workflow state. AssignedTo
// is optional; when present it is staged and sent with the status change.
type UpdateIncidentRequest struct {
	Status     string  `json:"status" validate:"required,oneof=New Active InProgress Resolved Closed"`
	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,max=120"`
}
