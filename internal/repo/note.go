package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Note is a stored clinical note joined with its summary row, if any.
type Note struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Summary is the raw summary JSON; nil when the note has no summary.
	Summary       []byte
	SummaryEdited bool
}

type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// CreateNote stores text under a fresh timestamp-derived id.
func (c *Client) CreateNote(ctx context.Context, text string) (*Note, error) {
	id, err := c.nextNoteID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query, args := c.builder().Insert(TableNotes).
		Columns("id", "text", "created_at", "updated_at").
		Values(id, text, now, now).
		Query()
	if err := c.drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return &Note{ID: id, Text: text, CreatedAt: now, UpdatedAt: now}, nil
}

// nextNoteID returns unix millis plus a random suffix. A colliding id is
// retried with a wider suffix.
func (c *Client) nextNoteID(ctx context.Context) (int64, error) {
	base := time.Now().UnixMilli()
	id := base + 1000 + rand.Int64N(9000)

	for range 5 {
		exists, err := c.NoteExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
		id = base + 10000 + rand.Int64N(90000)
	}
	return 0, fmt.Errorf("generate note id: too many collisions")
}

func (c *Client) NoteExists(ctx context.Context, id int64) (bool, error) {
	query, args := c.builder().Select(entsql.Count("*")).
		From(entsql.Table(TableNotes)).
		Where(entsql.EQ("id", id)).
		Query()
	n, err := count(ctx, c.drv, query, args)
	if err != nil {
		return false, fmt.Errorf("check note %d: %w", id, err)
	}
	return n > 0, nil
}

func (c *Client) noteSelector() (*entsql.Selector, *entsql.SelectTable) {
	// Both sides are aliased up front; LeftJoin would otherwise alias the
	// joined table after its columns were already qualified.
	n := entsql.Table(TableNotes).As("n")
	s := entsql.Table(TableSummaries).As("s")
	sel := c.builder().
		Select(n.C("id"), n.C("text"), n.C("created_at"), n.C("updated_at"), s.C("summary_data"), s.C("is_edited")).
		From(n).
		LeftJoin(s).
		On(n.C("id"), s.C("note_id"))
	return sel, n
}

// GetNote returns the note with its summary, or ErrNotFound.
func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	sel, n := c.noteSelector()
	query, args := sel.Where(entsql.EQ(n.C("id"), id)).Query()

	notes, err := c.queryNotes(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	if len(notes) == 0 {
		return nil, ErrNotFound
	}
	return notes[0], nil
}

// ListNotes returns every note with its summary in creation order.
func (c *Client) ListNotes(ctx context.Context, order Order) ([]*Note, error) {
	sel, n := c.noteSelector()
	if order == OldestFirst {
		sel.OrderBy(n.C("created_at"), n.C("id"))
	} else {
		sel.OrderBy(entsql.Desc(n.C("created_at")), entsql.Desc(n.C("id")))
	}
	query, args := sel.Query()

	notes, err := c.queryNotes(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// LatestNoteID returns the id of the most recently created note.
func (c *Client) LatestNoteID(ctx context.Context) (int64, error) {
	query, args := c.builder().Select("id").
		From(entsql.Table(TableNotes)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("latest note: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, ErrNotFound
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Client) UpdateNoteText(ctx context.Context, id int64, text string) error {
	query, args := c.builder().Update(TableNotes).
		Set("text", text).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.EQ("id", id)).
		Query()

	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return requireAffected(res)
}

// DeleteNote removes the note together with its summary and follow-up rows.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.withTx(ctx, func(q querier) error {
		for _, table := range []string{TableSummaries, TableFollowUps} {
			query, args := c.builder().Delete(table).Where(entsql.EQ("note_id", id)).Query()
			if err := q.Exec(ctx, query, args, nil); err != nil {
				return fmt.Errorf("delete %s of note %d: %w", table, id, err)
			}
		}

		query, args := c.builder().Delete(TableNotes).Where(entsql.EQ("id", id)).Query()
		var res sql.Result
		if err := q.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("delete note %d: %w", id, err)
		}
		return requireAffected(res)
	})
}

func (c *Client) queryNotes(ctx context.Context, query string, args []any) ([]*Note, error) {
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		var (
			n       Note
			summary []byte
			edited  sql.NullBool
		)
		if err := rows.Scan(&n.ID, &n.Text, &n.CreatedAt, &n.UpdatedAt, &summary, &edited); err != nil {
			return nil, err
		}
		n.Summary = summary
		n.SummaryEdited = edited.Bool
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
