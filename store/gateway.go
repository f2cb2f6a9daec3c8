// Package store is the boundary to the remote table store. The rest of the
// service talks to a Gateway and never to a concrete backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"varal-dos-sonhos/model"
)

// ErrNotFound is returned by Find when the table has no record with the given id.
var ErrNotFound = errors.New("record not found")

// Gateway is shared by all requests and must be safe for concurrent use.
type Gateway interface {
	// Select returns the records of table matching q. A zero Query returns
	// every record of the table.
	Select(ctx context.Context, table string, q Query) ([]model.Record, error)
	Find(ctx context.Context, table, id string) (*model.Record, error)
	Create(ctx context.Context, table string, fields model.Fields) (*model.Record, error)
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     string
	Direction Direction
}

type Query struct {
	Filter Filter
	Sort   []Sort
	// MaxRecords caps the result; zero means no cap.
	MaxRecords int
}

// APIError is an error reported by a remote store's HTTP API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("store API error (status %d): %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("store API error (status %d): %s", e.StatusCode, e.Message)
}
