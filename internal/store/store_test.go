package store

import (
	"path/filepath"
	"testing"
	"time"

	"clock_tui/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "clock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_KeyValue(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("clock_alarmSound")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("clock_alarmSound", "chime"))
	require.NoError(t, s.Set("clock_alarmSound", "digital"))

	v, ok, err := s.Get("clock_alarmSound")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "digital", v)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestStore_FocusAccumulatesPerDay(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddFocus("2024-03-01", 25*time.Minute))
	require.NoError(t, s.AddFocus("2024-03-01", 25*time.Minute))
	require.NoError(t, s.AddFocus("2024-03-02", time.Second))
	require.NoError(t, s.AddFocus("2024-02-28", 10*time.Minute))

	stats, err := s.FocusStats(2)
	require.NoError(t, err)
	assert.Equal(t, []DayStat{
		{Day: "2024-03-01", Focus: 50 * time.Minute},
		{Day: "2024-03-02", Focus: time.Second},
	}, stats)

	all, err := s.FocusStats(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	total, err := s.TotalFocus()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute+time.Second, total)
}

func TestStore_TotalFocusEmpty(t *testing.T) {
	s := openTestStore(t)
	total, err := s.TotalFocus()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStore_HistoryNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first := &history.Record{Kind: history.KindTimer, Duration: 90 * time.Second, FinishedAt: base}
	second := &history.Record{Kind: history.KindMulti, Label: "5:00", Duration: 5 * time.Minute, FinishedAt: base.Add(time.Hour)}
	require.NoError(t, s.CreateRecord(first))
	require.NoError(t, s.CreateRecord(second))
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := s.RecentRecords(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, history.KindMulti, records[0].Kind)
	assert.Equal(t, "5:00", records[0].Label)
	assert.Equal(t, 5*time.Minute, records[0].Duration)
	assert.True(t, records[0].FinishedAt.Equal(base.Add(time.Hour)))
	assert.Equal(t, history.KindTimer, records[1].Kind)

	limited, err := s.RecentRecords(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
