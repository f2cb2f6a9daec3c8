package model

// Fields is the loosely typed field set of a remote record.
type Fields map[string]any

type Record struct {
	ID          string `json:"id"`
	Fields      Fields `json:"fields"`
	CreatedTime string `json:"createdTime,omitempty"`
}
