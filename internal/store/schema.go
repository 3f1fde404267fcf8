package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/dropwatch/ent/schema"
)

// Table names, one per schema in ent/schema.
const (
	llmEventsTable   = "llm_request_events"
	assessmentsTable = "assessment_events"
	artifactsTable   = "model_artifacts"
)

var entities = []struct {
	table  string
	schema ent.Interface
}{
	{llmEventsTable, schema.LLMRequestEvent{}},
	{assessmentsTable, schema.AssessmentEvent{}},
	{artifactsTable, schema.ModelArtifact{}},
}

// tables builds the migration tables from the ent schema definitions:
// an auto-increment id, the mixin fields, then the schema's own fields.
func tables() ([]*entschema.Table, error) {
	out := make([]*entschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e.table, e.schema)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", e.table, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func tableOf(name string, s ent.Interface) (*entschema.Table, error) {
	id := &entschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &entschema.Table{Name: name, Columns: []*entschema.Column{id}, PrimaryKey: []*entschema.Column{id}}
	byName := map[string]*entschema.Column{"id": id}

	fields, indexes := []ent.Field{}, []ent.Index{}
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		c := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Size:     int64(d.Size),
		}
		if plainDefault(d.Default) {
			c.Default = d.Default
		}
		t.Columns = append(t.Columns, c)
		byName[d.Name] = c
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		ix := &entschema.Index{Name: name + "_" + strings.Join(d.Fields, "_"), Unique: d.Unique}
		for _, fname := range d.Fields {
			c, ok := byName[fname]
			if !ok {
				return nil, fmt.Errorf("index on unknown field %s", fname)
			}
			ix.Columns = append(ix.Columns, c)
		}
		t.Indexes = append(t.Indexes, ix)
	}
	return t, nil
}

// plainDefault reports whether v can be a column default. Function
// defaults such as time.Now are applied by the repos instead.
func plainDefault(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64, reflect.String:
		return true
	}
	return false
}

// migrate creates or updates the tables through ent's migrator.
func migrate(ctx context.Context, drv dialect.Driver) error {
	ts, err := tables()
	if err != nil {
		return err
	}
	m, err := entschema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, ts...)
}
