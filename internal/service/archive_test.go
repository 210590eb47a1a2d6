package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/database"
)

type recordingStore struct {
	year   database.CalendarYear
	feasts []database.Feast
	err    error
}

func (s *recordingStore) SaveYear(_ context.Context, year database.CalendarYear, feasts []database.Feast) error {
	s.year, s.feasts = year, feasts
	return s.err
}

func TestArchiveYear(t *testing.T) {
	svc, m := testCalendar(t, nil)
	store := &recordingStore{}

	row, err := svc.ArchiveYear(context.Background(), store, 1583, "en", "run-1")
	require.NoError(t, err)

	assert.Equal(t, "gregorian_first", row.Era)
	assert.Equal(t, "1583-04-10", row.Easter)
	assert.Equal(t, "run-1", row.RunID)
	assert.Equal(t, row, store.year)
	require.Len(t, store.feasts, calendar.FeastsPerYear)
	assert.Equal(t, "en", store.feasts[0].Language)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.YearsArchived))
}

func TestArchiveYear_UnknownLanguageStoredAsDefault(t *testing.T) {
	svc, _ := testCalendar(t, nil)
	store := &recordingStore{}

	row, err := svc.ArchiveYear(context.Background(), store, 2024, "ko", "run")
	require.NoError(t, err)
	assert.Equal(t, "fr", row.Language)
}

func TestArchiveYear_Errors(t *testing.T) {
	svc, _ := testCalendar(t, nil)

	_, err := svc.ArchiveYear(context.Background(), &recordingStore{}, 12000, "fr", "run")
	assert.ErrorIs(t, err, ErrYearOutOfRange)

	boom := errors.New("disk full")
	_, err = svc.ArchiveYear(context.Background(), &recordingStore{err: boom}, 2024, "fr", "run")
	assert.ErrorIs(t, err, boom)
}
