package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"varal-dos-sonhos/model"
)

func newTestAirtable(t *testing.T, handler http.HandlerFunc) *Airtable {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	a, err := NewAirtable(srv.URL+"/v0/", "appTEST", "key123")
	if err != nil {
		t.Fatalf("NewAirtable failed: %v", err)
	}
	return a
}

func TestFormula(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"equals", Equals{Field: "email", Value: "a@b.com"}, `{email} = "a@b.com"`},
		{"equals escapes quotes", Equals{Field: "email", Value: `x" OR TRUE() OR "`}, `{email} = "x\" OR TRUE() OR \""`},
		{"is true", IsTrue{Field: "destaque_home"}, `{destaque_home} = TRUE()`},
		{"contains", Contains{Field: "pergunta", Text: `Como\doar`}, `FIND(LOWER("Como\\doar"), LOWER({pergunta}))`},
	}

	for _, tt := range tests {
		if got := Formula(tt.filter); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestAirtableSelectFollowsOffset(t *testing.T) {
	t.Parallel()

	calls := 0
	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v0/appTEST/eventos" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("Unexpected auth header %q", got)
		}
		q := r.URL.Query()
		if q.Get("filterByFormula") != "{destaque_home} = TRUE()" {
			t.Errorf("Unexpected formula %q", q.Get("filterByFormula"))
		}
		if q.Get("sort[0][field]") != "data_inicio" || q.Get("sort[0][direction]") != "asc" {
			t.Errorf("Unexpected sort params %v", q)
		}

		switch q.Get("offset") {
		case "":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{"nome": "A"}}},
				"offset":  "itrNext",
			})
		case "itrNext":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec2", "fields": map[string]any{"nome": "B"}}},
			})
		default:
			t.Errorf("Unexpected offset %q", q.Get("offset"))
		}
	})

	records, err := a.Select(context.Background(), "eventos", Query{
		Filter: IsTrue{Field: "destaque_home"},
		Sort:   []Sort{{Field: "data_inicio"}},
	})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 page requests, got %d", calls)
	}
	if len(records) != 2 || records[0].ID != "rec1" || records[1].ID != "rec2" {
		t.Errorf("Unexpected records: %+v", records)
	}
}

func TestAirtableSelectMaxRecords(t *testing.T) {
	t.Parallel()

	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("maxRecords") != "1" || r.URL.Query().Get("pageSize") != "1" {
			t.Errorf("Expected maxRecords=1 and pageSize=1, got %v", r.URL.Query())
		}
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec1"}},
			"offset":  "more",
		})
	})

	records, err := a.Select(context.Background(), "usuarios", Query{Filter: Equals{Field: "email", Value: "x@y.com"}, MaxRecords: 1})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}

func TestAirtableFindNotFound(t *testing.T) {
	t.Parallel()

	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"NOT_FOUND"}`))
	})

	_, err := a.Find(context.Background(), "eventos", "recMissing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAirtableFind(t *testing.T) {
	t.Parallel()

	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/appTEST/eventos/rec42" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"rec42","createdTime":"2025-01-01T00:00:00.000Z","fields":{"nome":"Feira"}}`))
	})

	record, err := a.Find(context.Background(), "eventos", "rec42")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if record.ID != "rec42" || record.Fields["nome"] != "Feira" {
		t.Errorf("Unexpected record: %+v", record)
	}
}

func TestAirtableCreate(t *testing.T) {
	t.Parallel()

	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v0/appTEST/doacoes" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body struct {
			Records []struct {
				Fields model.Fields `json:"fields"`
			} `json:"records"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if len(body.Records) != 1 || body.Records[0].Fields["doador"] != "x@y.com" {
			t.Errorf("Unexpected records: %+v", body.Records)
		}
		w.Write([]byte(`{"records":[{"id":"recNew","fields":{"doador":"x@y.com"}}]}`))
	})

	record, err := a.Create(context.Background(), "doacoes", model.Fields{"doador": "x@y.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.ID != "recNew" || record.Fields["doador"] != "x@y.com" {
		t.Errorf("Unexpected record: %+v", record)
	}
}

func TestNewAirtableRejectsBadEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := NewAirtable("://sem-esquema", "appTEST", "key"); err == nil {
		t.Error("Expected error for an unparsable endpoint")
	}
}

func TestParseAirtableErrorWithoutBody(t *testing.T) {
	t.Parallel()

	err := parseAirtableError(http.StatusBadGateway, "bad gateway", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "bad gateway" {
		t.Errorf("Unexpected error %+v", err)
	}
}

func TestAirtableAPIError(t *testing.T) {
	t.Parallel()

	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"type":"INVALID_FILTER_BY_FORMULA","message":"bad formula"}}`))
	})

	_, err := a.Select(context.Background(), "cartinhas", Query{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Type != "INVALID_FILTER_BY_FORMULA" || apiErr.Message != "bad formula" {
		t.Errorf("Unexpected APIError: %+v", apiErr)
	}
}
