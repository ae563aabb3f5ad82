package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const samplePreviewLen = 100

type TableStats struct {
	Table   string   `json:"table"`
	Count   int      `json:"count"`
	Samples []Sample `json:"samples"`
}

type Sample struct {
	NoteID    int64     `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
	Preview   string    `json:"preview"`
}

// Stats returns row counts and the newest few rows of every table.
func (c *Client) Stats(ctx context.Context, samples int) ([]TableStats, error) {
	specs := []struct {
		table, idCol, bodyCol string
	}{
		{TableNotes, "id", "text"},
		{TableSummaries, "note_id", "summary_data"},
		{TableFollowUps, "note_id", "actions_data"},
	}

	out := make([]TableStats, 0, len(specs))
	for _, s := range specs {
		query, args := c.builder().Select(entsql.Count("*")).From(entsql.Table(s.table)).Query()
		n, err := count(ctx, c.drv, query, args)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", s.table, err)
		}

		rowsSample, err := c.sample(ctx, s.table, s.idCol, s.bodyCol, samples)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", s.table, err)
		}
		out = append(out, TableStats{Table: s.table, Count: n, Samples: rowsSample})
	}
	return out, nil
}

func (c *Client) sample(ctx context.Context, table, idCol, bodyCol string, limit int) ([]Sample, error) {
	query, args := c.builder().Select(idCol, "created_at", bodyCol).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("created_at")).
		Limit(limit).
		Query()

	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Sample{}
	for rows.Next() {
		var (
			s    Sample
			body []byte
		)
		if err := rows.Scan(&s.NoteID, &s.CreatedAt, &body); err != nil {
			return nil, err
		}
		s.Preview = preview(string(body))
		out = append(out, s)
	}
	return out, rows.Err()
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= samplePreviewLen {
		return s
	}
	return string(r[:samplePreviewLen]) + "..."
}
