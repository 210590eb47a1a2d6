package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/feastcal/internal/database"
	"github.com/zapponejosh/feastcal/internal/logger"
)

func TestParseFlags_ToDefaultsToFrom(t *testing.T) {
	opts, err := parseFlags([]string{"-from", "1999"})
	require.NoError(t, err)
	assert.Equal(t, 1999, opts.to)
}

func TestParseFlags_YearZeroIsAValidEnd(t *testing.T) {
	opts, err := parseFlags([]string{"-from", "-10", "-to", "0"})
	require.NoError(t, err)
	assert.Equal(t, -10, opts.from)
	assert.Equal(t, 0, opts.to)
}

func TestRun_PartialLanguageFallsBackToDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "feastcal.db")
	opts := options{from: 2024, to: 2024, lang: "es", defaultLang: "fr", dbPath: dbPath, workers: 2}
	require.NoError(t, run(context.Background(), opts, logger.Discard()))

	db, err := database.Open(database.DefaultConfig(dbPath), logger.Discard())
	require.NoError(t, err)
	defer db.Close()

	year, err := db.GetYear(context.Background(), 2024, "es")
	require.NoError(t, err)
	require.Len(t, year.Feasts, 34)
	for _, f := range year.Feasts {
		assert.NotEqual(t, "feast."+f.Key+".name", f.Name, "unresolved name for %s", f.Key)
		assert.NotEqual(t, "feast."+f.Key+".description", f.Description, "unresolved description for %s", f.Key)
	}
}

func TestRun_RejectsUnknownLanguage(t *testing.T) {
	opts := options{from: 2024, to: 2024, lang: "ko", defaultLang: "fr", dbPath: filepath.Join(t.TempDir(), "x.db"), workers: 1}
	assert.Error(t, run(context.Background(), opts, logger.Discard()))
}

func TestRun_YearRangeThroughZero(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "feastcal.db")
	opts := options{from: -2, to: 0, lang: "fr", defaultLang: "fr", dbPath: dbPath, workers: 2}
	require.NoError(t, run(context.Background(), opts, logger.Discard()))

	db, err := database.Open(database.DefaultConfig(dbPath), logger.Discard())
	require.NoError(t, err)
	defer db.Close()

	years, err := db.ArchivedYears(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, []int{-2, -1, 0}, years)
}
