package dto

// QueryRequest carries an ad-hoc KQL query
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}
