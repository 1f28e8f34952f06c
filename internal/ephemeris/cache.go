package ephemeris

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/graha/internal/zodiac"
)

// ErrNoSource indicates OpenCache was called without a source fingerprint.
var ErrNoSource = errors.New("cache: source fingerprint is required")

// cacheVersion is stored in PRAGMA user_version. Databases written by an
// older layout are dropped and rebuilt on open.
const cacheVersion = 2

const cacheSchema = `
CREATE TABLE IF NOT EXISTS positions (
    source          TEXT NOT NULL,
    instant         INTEGER NOT NULL,
    body            TEXT NOT NULL,
    system          TEXT NOT NULL,
    flags           INTEGER NOT NULL,
    longitude       REAL NOT NULL,
    latitude        REAL NOT NULL,
    distance        REAL NOT NULL,
    speed_longitude REAL NOT NULL,
    speed_latitude  REAL NOT NULL,
    speed_distance  REAL NOT NULL,
    cached_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (source, instant, body, system, flags)
);

CREATE TABLE IF NOT EXISTS houses (
    source       TEXT NOT NULL,
    instant      INTEGER NOT NULL,
    latitude     REAL NOT NULL,
    longitude    REAL NOT NULL,
    house_system TEXT NOT NULL,
    cusps        TEXT NOT NULL,
    ascendant    REAL NOT NULL,
    midheaven    REAL NOT NULL,
    cached_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (source, instant, latitude, longitude, house_system)
);
`

type positionRow struct {
	Longitude      float64 `db:"longitude"`
	Latitude       float64 `db:"latitude"`
	Distance       float64 `db:"distance"`
	SpeedLongitude float64 `db:"speed_longitude"`
	SpeedLatitude  float64 `db:"speed_latitude"`
	SpeedDistance  float64 `db:"speed_distance"`
}

type housesRow struct {
	Cusps     string  `db:"cusps"`
	Ascendant float64 `db:"ascendant"`
	Midheaven float64 `db:"midheaven"`
}

// CacheStats counts cache lookups since the cache was opened.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Cache is a read-through Oracle backed by a local SQLite database in WAL
// mode. Successful answers from the wrapped oracle are stored under the
// source fingerprint given at open; errors are passed through and never
// cached. Several sources can share one database file.
type Cache struct {
	db     *sqlx.DB
	source string
	next   Oracle
	hits   atomic.Int64
	misses atomic.Int64
}

// OpenCache opens (or creates) the cache database at dbPath in front of next.
// source identifies everything next's answers depend on (see
// TableOracle.Fingerprint); entries stored under another source are never
// returned.
func OpenCache(ctx context.Context, dbPath, source string, next Oracle) (*Cache, error) {
	if source == "" {
		return nil, ErrNoSource
	}
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory:
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: set busy timeout: %w", err)
	}
	if err := migrateCache(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, source: source, next: next}, nil
}

func migrateCache(ctx context.Context, db *sqlx.DB) error {
	var version int
	if err := db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("cache: read schema version: %w", err)
	}
	if version != cacheVersion {
		for _, table := range []string{"positions", "houses"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("cache: drop %s: %w", table, err)
			}
		}
	}
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		return fmt.Errorf("cache: create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", cacheVersion)); err != nil {
		return fmt.Errorf("cache: write schema version: %w", err)
	}
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Position implements Oracle.
func (c *Cache) Position(ctx context.Context, at time.Time, body zodiac.Body, system CoordinateSystem, flags Flags) (zodiac.Position, error) {
	var row positionRow
	const q = `
		SELECT longitude, latitude, distance, speed_longitude, speed_latitude, speed_distance
		FROM positions WHERE source = ? AND instant = ? AND body = ? AND system = ? AND flags = ?`
	err := c.db.GetContext(ctx, &row, q, c.source, at.UnixNano(), body.String(), string(system), int(flags))
	switch {
	case err == nil:
		c.hits.Add(1)
		return zodiac.Position(row), nil
	case !errors.Is(err, sql.ErrNoRows):
		return zodiac.Position{}, fmt.Errorf("cache: get position %s: %w", body, err)
	}

	c.misses.Add(1)
	pos, err := c.next.Position(ctx, at, body, system, flags)
	if err != nil {
		return zodiac.Position{}, err
	}

	const ins = `
		INSERT INTO positions (source, instant, body, system, flags, longitude, latitude, distance,
			speed_longitude, speed_latitude, speed_distance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`
	if _, err := c.db.ExecContext(ctx, ins, c.source, at.UnixNano(), body.String(), string(system), int(flags),
		pos.Longitude, pos.Latitude, pos.Distance,
		pos.SpeedLongitude, pos.SpeedLatitude, pos.SpeedDistance); err != nil {
		return zodiac.Position{}, fmt.Errorf("cache: put position %s: %w", body, err)
	}
	return pos, nil
}

// Houses implements Oracle.
func (c *Cache) Houses(ctx context.Context, at time.Time, lat, lon float64, houseSystem byte) (Houses, error) {
	var row housesRow
	const q = `
		SELECT cusps, ascendant, midheaven FROM houses
		WHERE source = ? AND instant = ? AND latitude = ? AND longitude = ? AND house_system = ?`
	err := c.db.GetContext(ctx, &row, q, c.source, at.UnixNano(), lat, lon, string(houseSystem))
	switch {
	case err == nil:
		h := Houses{Ascendant: row.Ascendant, Midheaven: row.Midheaven}
		if err := json.Unmarshal([]byte(row.Cusps), &h.Cusps); err != nil {
			return Houses{}, fmt.Errorf("cache: decode cusps: %w", err)
		}
		c.hits.Add(1)
		return h, nil
	case !errors.Is(err, sql.ErrNoRows):
		return Houses{}, fmt.Errorf("cache: get houses: %w", err)
	}

	c.misses.Add(1)
	h, err := c.next.Houses(ctx, at, lat, lon, houseSystem)
	if err != nil {
		return Houses{}, err
	}

	cusps, err := json.Marshal(h.Cusps)
	if err != nil {
		return Houses{}, fmt.Errorf("cache: encode cusps: %w", err)
	}
	const ins = `
		INSERT INTO houses (source, instant, latitude, longitude, house_system, cusps, ascendant, midheaven)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`
	if _, err := c.db.ExecContext(ctx, ins, c.source, at.UnixNano(), lat, lon, string(houseSystem),
		string(cusps), h.Ascendant, h.Midheaven); err != nil {
		return Houses{}, fmt.Errorf("cache: put houses: %w", err)
	}
	return h, nil
}

// Purge removes every cached entry, for all sources.
func (c *Cache) Purge(ctx context.Context) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache: begin purge: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"positions", "houses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("cache: purge %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: commit purge: %w", err)
	}
	return nil
}
