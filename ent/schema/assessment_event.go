package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AssessmentEvent records one dropout-risk assessment: the five inputs,
// the probability and bucket, and the programmes recommended.
type AssessmentEvent struct {
	ent.Schema
}

func (AssessmentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AssessmentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the dashboard or CLI run"),
		field.String("source").
			Comment("predict or cli"),
		field.Float("age"),
		field.Float("admission_grade"),
		field.Bool("scholarship_holder"),
		field.Float("first_semester_grade"),
		field.Bool("tuition_up_to_date"),
		field.Float("probability"),
		field.String("bucket"),
		field.JSON("programs", []string{}).
			Comment("Recommended programmes, in display order"),
		field.String("model_key").
			Default("").
			Comment("Cache key of the model that scored it"),
	}
}

func (AssessmentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("source"),
	}
}
