package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SaveSummary stores data as the note's summary, replacing any previous one.
func (c *Client) SaveSummary(ctx context.Context, noteID int64, data []byte, edited bool) error {
	now := time.Now().UTC()
	query, args := c.builder().Insert(TableSummaries).
		Columns("note_id", "summary_data", "is_edited", "created_at", "updated_at").
		Values(noteID, string(data), edited, now, now).
		OnConflict(
			entsql.ConflictColumns("note_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("summary_data")
				u.SetExcluded("is_edited")
				u.SetExcluded("updated_at")
			}),
		).
		Query()

	if err := c.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save summary of note %d: %w", noteID, err)
	}
	return nil
}
