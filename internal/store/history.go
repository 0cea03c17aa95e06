package store

import (
	"time"

	"clock_tui/internal/history"
)

func (s *Store) CreateRecord(r *history.Record) error {
	result, err := s.db.Exec(
		"INSERT INTO history (kind, label, duration, finished_at) VALUES (?, ?, ?, ?)",
		string(r.Kind),
		r.Label,
		int64(r.Duration),
		r.FinishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// RecentRecords returns up to limit records, newest first.
func (s *Store) RecentRecords(limit int) ([]history.Record, error) {
	rows, err := s.db.Query(
		"SELECT id, kind, label, duration, finished_at FROM history ORDER BY finished_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var r history.Record
		var kind, finishedAt string
		var duration int64
		if err := rows.Scan(&r.ID, &kind, &r.Label, &duration, &finishedAt); err != nil {
			return nil, err
		}
		r.Kind = history.Kind(kind)
		r.Duration = time.Duration(duration)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
