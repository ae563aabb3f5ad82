package schema

import (
	"encoding/json"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// FollowUp holds the generated patient and doctor actions of a note.
type FollowUp struct {
	ent.Schema
}

func (FollowUp) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "follow_up_actions"},
	}
}

func (FollowUp) Mixin() []ent.Mixin {
	return []ent.Mixin{
		TimeStampedMixin{},
	}
}

func (FollowUp) Fields() []ent.Field {
	return []ent.Field{
		field.JSON("actions_data", json.RawMessage{}),

		// Unique through the one-to-one edge below.
		field.Int64("note_id"),
	}
}

func (FollowUp) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("note", Note.Type).
			Ref("follow_up").
			Field("note_id").
			Unique().
			Required(),
	}
}
