package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ModelArtifact is an encoded trained model keyed by its cache key.
type ModelArtifact struct {
	ent.Schema
}

func (ModelArtifact) Fields() []ent.Field {
	return []ent.Field{
		field.String("cache_key").
			Unique().
			NotEmpty().
			Comment("sha256 of dataset fingerprint, feature set and model config"),
		field.Bytes("payload"),
		field.Int("size"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
