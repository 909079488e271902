package hunting

// QueryResult holds the tabular outcome of a KQL query execution. A failed
// query carries Error and empty columns/rows; callers must check Error
// before rendering.
type QueryResult struct {
	Columns  []string                 `json:"columns"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"row_count"`
	Error    string                   `json:"error,omitempty"`
}

// Failed reports whether the query was rejected by the engine
func (r *QueryResult) Failed() bool {
	return r.Error != ""
}
