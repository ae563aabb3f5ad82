package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type FollowUp struct {
	NoteID    int64
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveFollowUp stores the generated actions of a note, replacing any
// previous record.
func (c *Client) SaveFollowUp(ctx context.Context, noteID int64, data []byte) error {
	now := time.Now().UTC()
	query, args := c.builder().Insert(TableFollowUps).
		Columns("note_id", "actions_data", "created_at", "updated_at").
		Values(noteID, string(data), now, now).
		OnConflict(
			entsql.ConflictColumns("note_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("actions_data")
				u.SetExcluded("updated_at")
			}),
		).
		Query()

	if err := c.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save follow-up of note %d: %w", noteID, err)
	}
	return nil
}

func (c *Client) GetFollowUp(ctx context.Context, noteID int64) (*FollowUp, error) {
	query, args := c.builder().Select("note_id", "actions_data", "created_at", "updated_at").
		From(entsql.Table(TableFollowUps)).
		Where(entsql.EQ("note_id", noteID)).
		Query()

	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("get follow-up of note %d: %w", noteID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var f FollowUp
	if err := rows.Scan(&f.NoteID, &f.Data, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
