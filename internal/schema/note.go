package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Note is a free-text clinical entry.
type Note struct {
	ent.Schema
}

func (Note) Mixin() []ent.Mixin {
	return []ent.Mixin{
		TimeStampedMixin{},
	}
}

func (Note) Fields() []ent.Field {
	return []ent.Field{
		// Derived from the creation time by the store, not auto-incremented.
		field.Int64("id").
			Immutable(),

		field.Text("text"),
	}
}

func (Note) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("summary", Summary.Type).
			Unique().
			Annotations(entsql.OnDelete(entsql.Cascade)),

		edge.To("follow_up", FollowUp.Type).
			Unique().
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Note) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
