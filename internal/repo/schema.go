package repo

import (
	"fmt"
	"sync"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/entc/gen"
	"entgo.io/ent/entc/load"

	entschema "github.com/Alijeyrad/health_companion/internal/schema"
)

const (
	TableNotes     = "notes"
	TableSummaries = "summaries"
	TableFollowUps = "follow_up_actions"
)

// entities are the schemas migrated by Migrate.
var entities = []ent.Interface{
	entschema.Note{},
	entschema.Summary{},
	entschema.FollowUp{},
}

// Tables builds the SQL tables of the schemas in internal/schema with ent's
// own graph loader, the same path `ent generate` uses for migrate/schema.go.
var Tables = sync.OnceValues(func() ([]*schema.Table, error) {
	storage, err := gen.NewStorage("sql")
	if err != nil {
		return nil, err
	}

	schemas := make([]*load.Schema, 0, len(entities))
	for _, e := range entities {
		buf, err := load.MarshalSchema(e)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		s, err := load.UnmarshalSchema(buf)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		schemas = append(schemas, s)
	}

	graph, err := gen.NewGraph(&gen.Config{Storage: storage}, schemas...)
	if err != nil {
		return nil, fmt.Errorf("build schema graph: %w", err)
	}
	return graph.Tables()
})
