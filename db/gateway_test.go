package db

import (
	"strings"
	"testing"

	"varal-dos-sonhos/store"
)

func TestWhereClause(t *testing.T) {
	tests := []struct {
		filter store.Filter
		sql    string
		args   int
	}{
		{store.Equals{Field: "email", Value: "a@b.com"}, "fields ->> 'email' = ?", 1},
		{store.IsTrue{Field: "destaque_home"}, "fields ->> 'destaque_home' = 'true'", 0},
		{store.Contains{Field: "pergunta", Text: "doar"}, "strpos(lower(fields ->> 'pergunta'), lower(?)) > 0", 1},
		{store.Equals{Field: "nome_crianca", Value: "x"}, "fields ->> 'nome_crianca' = ?", 1},
	}

	for _, tt := range tests {
		sql, args, err := whereClause(tt.filter)
		if err != nil {
			t.Errorf("%T: unexpected error %v", tt.filter, err)
			continue
		}
		if sql != tt.sql {
			t.Errorf("Expected %q, got %q", tt.sql, sql)
		}
		if len(args) != tt.args {
			t.Errorf("Expected %d args, got %d", tt.args, len(args))
		}
	}
}

func TestWhereClauseRejectsUnsafeFields(t *testing.T) {
	for _, name := range []string{"x' OR '1'='1", "a?b", "", "a;drop"} {
		if _, _, err := whereClause(store.Equals{Field: name, Value: "v"}); err == nil {
			t.Errorf("Expected error for field %q", name)
		}
	}
}

func TestOrderClause(t *testing.T) {
	asc, err := orderClause(store.Sort{Field: "data_inicio"})
	if err != nil || asc != "fields ->> 'data_inicio' ASC" {
		t.Errorf("Unexpected asc clause %q (%v)", asc, err)
	}
	desc, err := orderClause(store.Sort{Field: "data_inicio", Direction: store.Desc})
	if err != nil || desc != "fields ->> 'data_inicio' DESC" {
		t.Errorf("Unexpected desc clause %q (%v)", desc, err)
	}
}

func TestJSONFieldsRoundTrip(t *testing.T) {
	in := JSONFields{"nome": "Ana", "idade": float64(8)}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out JSONFields
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if out["nome"] != "Ana" || out["idade"] != float64(8) {
		t.Errorf("Unexpected fields %v", out)
	}

	var empty JSONFields
	if err := empty.Scan(nil); err != nil || empty == nil {
		t.Errorf("Expected empty non-nil fields, got %v (%v)", empty, err)
	}
	if err := empty.Scan(42); err == nil {
		t.Error("Expected error scanning an int")
	}
}

func TestNewRecordID(t *testing.T) {
	id := NewRecordID()
	if !strings.HasPrefix(id, "rec") || len(id) != 35 {
		t.Errorf("Unexpected id %q", id)
	}
	if id == NewRecordID() {
		t.Error("Expected unique ids")
	}
}

func TestToModelDefaultsFields(t *testing.T) {
	r := Record{ID: "rec1"}.toModel()
	if r.Fields == nil {
		t.Error("Expected non-nil fields")
	}
}
