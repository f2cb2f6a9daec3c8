package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mehanizm/airtable"

	"varal-dos-sonhos/model"
)

const airtablePageSize = 100

var _ Gateway = (*Airtable)(nil)

type sortQuery = struct {
	FieldName string
	Direction string
}

// Airtable is a Gateway over the Airtable REST API.
type Airtable struct {
	client *airtable.Client
	baseID string
}

func NewAirtable(endpoint, baseID, apiKey string) (*Airtable, error) {
	client := airtable.NewClient(apiKey)
	if endpoint != "" {
		if err := client.SetBaseURL(strings.TrimRight(endpoint, "/")); err != nil {
			return nil, fmt.Errorf("invalid Airtable endpoint %q: %w", endpoint, err)
		}
	}
	return &Airtable{client: client, baseID: baseID}, nil
}

func (a *Airtable) Select(ctx context.Context, table string, q Query) ([]model.Record, error) {
	sorts := make([]sortQuery, 0, len(q.Sort))
	for _, s := range q.Sort {
		dir := s.Direction
		if dir == "" {
			dir = Asc
		}
		sorts = append(sorts, sortQuery{FieldName: s.Field, Direction: string(dir)})
	}
	pageSize := airtablePageSize
	if q.MaxRecords > 0 {
		pageSize = min(pageSize, q.MaxRecords)
	}

	records := make([]model.Record, 0)
	offset := ""
	for {
		call := a.client.GetTable(a.baseID, table).GetRecords().PageSize(pageSize)
		if q.Filter != nil {
			call = call.WithFilterFormula(Formula(q.Filter))
		}
		if len(sorts) > 0 {
			call = call.WithSort(sorts...)
		}
		if q.MaxRecords > 0 {
			call = call.MaxRecords(q.MaxRecords)
		}
		if offset != "" {
			call = call.WithOffset(offset)
		}

		page, err := call.DoContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", table, apiError(err))
		}
		for _, r := range page.Records {
			records = append(records, toModel(r))
		}

		if page.Offset == "" || (q.MaxRecords > 0 && len(records) >= q.MaxRecords) {
			break
		}
		offset = page.Offset
	}

	if q.MaxRecords > 0 && len(records) > q.MaxRecords {
		records = records[:q.MaxRecords]
	}
	return records, nil
}

func (a *Airtable) Find(ctx context.Context, table, id string) (*model.Record, error) {
	r, err := a.client.GetTable(a.baseID, table).GetRecordContext(ctx, id)
	if err != nil {
		err = apiError(err)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("find %s/%s: %w", table, id, ErrNotFound)
		}
		return nil, fmt.Errorf("find %s/%s: %w", table, id, err)
	}
	record := toModel(r)
	return &record, nil
}

func (a *Airtable) Create(ctx context.Context, table string, fields model.Fields) (*model.Record, error) {
	created, err := a.client.GetTable(a.baseID, table).AddRecordsContext(ctx, &airtable.Records{
		Records: []*airtable.Record{{Fields: fields}},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", table, apiError(err))
	}
	if len(created.Records) == 0 {
		return nil, fmt.Errorf("create %s: empty response", table)
	}
	record := toModel(created.Records[0])
	return &record, nil
}

func toModel(r *airtable.Record) model.Record {
	fields := model.Fields(r.Fields)
	if fields == nil {
		fields = model.Fields{}
	}
	return model.Record{ID: r.ID, Fields: fields, CreatedTime: r.CreatedTime}
}

// apiError turns the client's HTTP failures into *APIError. The client
// embeds the response body in its message.
func apiError(err error) error {
	var httpErr *airtable.HTTPClientError
	if !errors.As(err, &httpErr) {
		return err
	}
	text := err.Error()
	if httpErr.Err != nil {
		text = httpErr.Err.Error()
	}
	body := ""
	if i := strings.Index(text, "{"); i >= 0 {
		body = text[i:]
	}
	return parseAirtableError(httpErr.StatusCode, text, []byte(body))
}

// Airtable reports errors either as {"error": "CODE"} or as
// {"error": {"type": "...", "message": "..."}}.
func parseAirtableError(status int, text string, data []byte) error {
	apiErr := &APIError{StatusCode: status, Message: strings.TrimSpace(text)}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(strings.NewReader(string(data))).Decode(&envelope); err != nil || len(envelope.Error) == 0 {
		return apiErr
	}

	var code string
	if err := json.Unmarshal(envelope.Error, &code); err == nil {
		apiErr.Type, apiErr.Message = code, code
		return apiErr
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detail); err == nil {
		apiErr.Type, apiErr.Message = detail.Type, detail.Message
	}
	return apiErr
}

// Formula renders a Filter as an Airtable filterByFormula expression.
func Formula(f Filter) string {
	switch t := f.(type) {
	case Equals:
		return fmt.Sprintf("{%s} = %s", t.Field, quote(t.Value))
	case IsTrue:
		return fmt.Sprintf("{%s} = TRUE()", t.Field)
	case Contains:
		return fmt.Sprintf("FIND(LOWER(%s), LOWER({%s}))", quote(t.Text), t.Field)
	}
	return ""
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
