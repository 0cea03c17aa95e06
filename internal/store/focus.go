package store

import (
	"time"
)

// DayStat is the focus time accumulated on one calendar day.
type DayStat struct {
	Day   string
	Focus time.Duration
}

// AddFocus adds d to the accumulator for day (YYYY-MM-DD).
func (s *Store) AddFocus(day string, d time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO focus_stats (day, seconds) VALUES (?, ?)
		 ON CONFLICT(day) DO UPDATE SET seconds = seconds + excluded.seconds`,
		day, int64(d/time.Second),
	)
	return err
}

// FocusStats returns the most recent limit days that have focus time,
// oldest first. limit <= 0 returns every day.
func (s *Store) FocusStats(limit int) ([]DayStat, error) {
	query := "SELECT day, seconds FROM (SELECT day, seconds FROM focus_stats ORDER BY day DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	query += ") ORDER BY day ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DayStat
	for rows.Next() {
		var st DayStat
		var seconds int64
		if err := rows.Scan(&st.Day, &seconds); err != nil {
			return nil, err
		}
		st.Focus = time.Duration(seconds) * time.Second
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// TotalFocus sums focus time over all days.
func (s *Store) TotalFocus() (time.Duration, error) {
	var seconds int64
	if err := s.db.QueryRow("SELECT COALESCE(SUM(seconds), 0) FROM focus_stats").Scan(&seconds); err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
