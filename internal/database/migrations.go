package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1CalendarYears,
	2: migrationV2Feasts,
}

// migrationV1CalendarYears creates one row per archived (year, language).
//
// The summary columns duplicate what the calendar package computes so the
// coverage report can compare them against the stored feasts without
// recomputing anything.
const migrationV1CalendarYears = `
-- Migration 001: archived years

CREATE TABLE IF NOT EXISTS calendar_years (
    year INTEGER NOT NULL,
    language TEXT NOT NULL,

    -- Era identifier: pre_julian, julian_bc, julian_ad, transition,
    -- gregorian_first, gregorian
    era TEXT NOT NULL,
    is_leap INTEGER NOT NULL CHECK (is_leap IN (0, 1)),

    -- Easter the feasts were built on, as YYYY-MM-DD
    easter TEXT NOT NULL,
    holiday_count INTEGER NOT NULL,

    -- Generation run that wrote the row (UUID)
    run_id TEXT NOT NULL,
    generated_at TEXT NOT NULL DEFAULT (datetime('now')),

    PRIMARY KEY (year, language)
);
`

// migrationV2Feasts creates the feast rows of each archived year.
//
// date_year, month and day are split out of date so cross-year lookups
// ("what fell on March 25?") and boundary checks stay plain SQL.
const migrationV2Feasts = `
-- Migration 002: archived feasts

CREATE TABLE IF NOT EXISTS feasts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    year INTEGER NOT NULL,
    language TEXT NOT NULL,
    feast_key TEXT NOT NULL,

    date TEXT NOT NULL,
    date_year INTEGER NOT NULL,
    month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),

    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('fixed', 'mobile', 'major')),
    description TEXT NOT NULL DEFAULT '',

    FOREIGN KEY (year, language) REFERENCES calendar_years (year, language) ON DELETE CASCADE,
    UNIQUE (year, language, feast_key)
);

CREATE INDEX IF NOT EXISTS idx_feasts_month_day ON feasts (language, month, day);
CREATE INDEX IF NOT EXISTS idx_feasts_key_year ON feasts (language, feast_key, year);
`
