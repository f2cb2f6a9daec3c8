package db

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varal-dos-sonhos/model"
	"varal-dos-sonhos/store"
)

var _ store.Gateway = (*Gateway)(nil)

// Record keeps every remote table in one relation; the schema-free fields live in a jsonb column.
type Record struct {
	ID        string     `gorm:"primaryKey;size:40"`
	Table     string     `gorm:"column:source_table;size:100;index;not null"`
	Fields    JSONFields `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (Record) TableName() string {
	return "records"
}

type JSONFields model.Fields

func (f JSONFields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *JSONFields) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = JSONFields{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONFields", src)
	}
	return json.Unmarshal(data, (*map[string]any)(f))
}

// Gateway stores records in PostgreSQL, for deployments that do not use Airtable.
type Gateway struct {
	DB *gorm.DB
}

func (g *Gateway) Select(ctx context.Context, table string, q store.Query) ([]model.Record, error) {
	query := g.DB.WithContext(ctx).Where("source_table = ?", table)

	if q.Filter != nil {
		sql, args, err := whereClause(q.Filter)
		if err != nil {
			return nil, err
		}
		query = query.Where(sql, args...)
	}
	for _, s := range q.Sort {
		order, err := orderClause(s)
		if err != nil {
			return nil, err
		}
		query = query.Order(order)
	}
	query = query.Order("created_at")
	if q.MaxRecords > 0 {
		query = query.Limit(q.MaxRecords)
	}

	var rows []Record
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records, nil
}

func (g *Gateway) Find(ctx context.Context, table, id string) (*model.Record, error) {
	var row Record
	err := g.DB.WithContext(ctx).First(&row, "id = ? AND source_table = ?", id, table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find %s/%s: %w", table, id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s/%s: %w", table, id, err)
	}
	record := row.toModel()
	return &record, nil
}

func (g *Gateway) Create(ctx context.Context, table string, fields model.Fields) (*model.Record, error) {
	row := Record{
		ID:     NewRecordID(),
		Table:  table,
		Fields: JSONFields(fields),
	}
	if err := g.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	record := row.toModel()
	return &record, nil
}

// NewRecordID returns an id shaped like the remote store's ("rec" prefix).
func NewRecordID() string {
	return "rec" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (r Record) toModel() model.Record {
	fields := model.Fields(r.Fields)
	if fields == nil {
		fields = model.Fields{}
	}
	return model.Record{
		ID:          r.ID,
		Fields:      fields,
		CreatedTime: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// field names are inlined as SQL literals, so they are restricted to a safe alphabet
var fieldName = regexp.MustCompile(`^[\p{L}\p{N}_ -]+$`)

func fieldRef(name string) (string, error) {
	if !fieldName.MatchString(name) {
		return "", fmt.Errorf("invalid field name %q", name)
	}
	return "fields ->> '" + name + "'", nil
}

func whereClause(f store.Filter) (string, []any, error) {
	switch t := f.(type) {
	case store.Equals:
		ref, err := fieldRef(t.Field)
		if err != nil {
			return "", nil, err
		}
		return ref + " = ?", []any{t.Value}, nil
	case store.IsTrue:
		ref, err := fieldRef(t.Field)
		if err != nil {
			return "", nil, err
		}
		return ref + " = 'true'", nil, nil
	case store.Contains:
		ref, err := fieldRef(t.Field)
		if err != nil {
			return "", nil, err
		}
		return "strpos(lower(" + ref + "), lower(?)) > 0", []any{t.Text}, nil
	}
	return "", nil, fmt.Errorf("unsupported filter %T", f)
}

func orderClause(s store.Sort) (string, error) {
	ref, err := fieldRef(s.Field)
	if err != nil {
		return "", err
	}
	if s.Direction == store.Desc {
		return ref + " DESC", nil
	}
	return ref + " ASC", nil
}
