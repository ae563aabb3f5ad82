package schema

import (
	"encoding/json"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Summary is the structured extraction of a note. At most one per note.
type Summary struct {
	ent.Schema
}

func (Summary) Mixin() []ent.Mixin {
	return []ent.Mixin{
		TimeStampedMixin{},
	}
}

func (Summary) Fields() []ent.Field {
	return []ent.Field{
		field.JSON("summary_data", json.RawMessage{}),

		field.Bool("is_edited").
			Default(false).
			Comment("Set once a client replaces the extracted summary"),

		// Unique through the one-to-one edge below.
		field.Int64("note_id"),
	}
}

func (Summary) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("note", Note.Type).
			Ref("summary").
			Field("note_id").
			Unique().
			Required(),
	}
}
