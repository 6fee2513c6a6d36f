// Package store database for app settings, recent directories, and the session log
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// recentDirLimit caps how many source directories the picker remembers.
const recentDirLimit = 10

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{db: db}

	// Create tables if they don't exist
	if err := database.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return database, nil
}

func (d *Database) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS app_settings (
		singleton INTEGER NOT NULL DEFAULT 1 CHECK (singleton = 1),
		image_directory         TEXT NOT NULL,
		include_subdirs         INTEGER NOT NULL,
		interval_preset_seconds INTEGER NOT NULL,
		custom_minutes          INTEGER NOT NULL,
		custom_seconds          INTEGER NOT NULL,
		window_width            INTEGER NOT NULL,
		window_height           INTEGER NOT NULL,
		PRIMARY KEY (singleton)
	);
	CREATE TABLE IF NOT EXISTS recent_dirs (
		path      TEXT NOT NULL,
		last_used INTEGER NOT NULL,
		PRIMARY KEY (path)
	);
	CREATE TABLE IF NOT EXISTS session_log (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		directory        TEXT NOT NULL,
		image_count      INTEGER NOT NULL,
		images_shown     INTEGER NOT NULL,
		interval_seconds INTEGER NOT NULL,
		started_at       INTEGER NOT NULL,
		ended_at         INTEGER,
		completed        INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_session_log_started_at ON session_log(started_at);
	`
	_, err := d.db.Exec(query)
	return err
}

func (d *Database) GetAppSettings() (*AppSettings, error) {
	const query = `
		SELECT image_directory,
		       include_subdirs,
		       interval_preset_seconds,
		       custom_minutes,
		       custom_seconds,
		       window_width,
		       window_height
		FROM app_settings
		WHERE singleton = 1
	`

	var s AppSettings
	var includeSubdirsInt int

	err := d.db.QueryRow(query).Scan(
		&s.ImageDirectory,
		&includeSubdirsInt,
		&s.IntervalPresetSeconds,
		&s.CustomMinutes,
		&s.CustomSeconds,
		&s.WindowWidth,
		&s.WindowHeight,
	)
	if err == sql.ErrNoRows {
		// Bootstrap defaults if no settings row exists yet
		defaults := &AppSettings{
			ImageDirectory:        "",
			IncludeSubdirs:        false,
			IntervalPresetSeconds: 60,
			CustomMinutes:         1,
			CustomSeconds:         0,
			WindowWidth:           420,
			WindowHeight:          700,
		}
		if err := d.UpsertAppSettings(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app settings: %w", err)
	}

	s.IncludeSubdirs = includeSubdirsInt != 0
	return &s, nil
}

func (d *Database) UpsertAppSettings(s *AppSettings) error {
	const stmt = `
		INSERT INTO app_settings (
			singleton,
			image_directory,
			include_subdirs,
			interval_preset_seconds,
			custom_minutes,
			custom_seconds,
			window_width,
			window_height
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			image_directory         = excluded.image_directory,
			include_subdirs         = excluded.include_subdirs,
			interval_preset_seconds = excluded.interval_preset_seconds,
			custom_minutes          = excluded.custom_minutes,
			custom_seconds          = excluded.custom_seconds,
			window_width            = excluded.window_width,
			window_height           = excluded.window_height
	`

	_, err := d.db.Exec(
		stmt,
		s.ImageDirectory,
		boolToInt(s.IncludeSubdirs),
		s.IntervalPresetSeconds,
		s.CustomMinutes,
		s.CustomSeconds,
		s.WindowWidth,
		s.WindowHeight,
	)
	if err != nil {
		return fmt.Errorf("upsert app settings: %w", err)
	}
	return nil
}

// TouchRecentDir records a source directory as just used and prunes the
// list down to the newest entries.
func (d *Database) TouchRecentDir(path string, usedAt time.Time) error {
	const stmt = `
		INSERT INTO recent_dirs (path, last_used) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET last_used = excluded.last_used
	`
	if _, err := d.db.Exec(stmt, path, usedAt.Unix()); err != nil {
		return fmt.Errorf("upsert recent dir: %w", err)
	}

	const prune = `
		DELETE FROM recent_dirs WHERE path NOT IN (
			SELECT path FROM recent_dirs ORDER BY last_used DESC, path LIMIT ?
		)
	`
	if _, err := d.db.Exec(prune, recentDirLimit); err != nil {
		return fmt.Errorf("prune recent dirs: %w", err)
	}
	return nil
}

func (d *Database) GetRecentDirs() ([]RecentDir, error) {
	const query = `
		SELECT path, last_used
		FROM recent_dirs
		ORDER BY last_used DESC, path
		LIMIT ?
	`
	rows, err := d.db.Query(query, recentDirLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent dirs: %w", err)
	}
	defer rows.Close()

	var dirs []RecentDir
	for rows.Next() {
		var dir RecentDir
		var lastUsed int64
		if err := rows.Scan(&dir.Path, &lastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan recent dir: %w", err)
		}
		dir.LastUsed = time.Unix(lastUsed, 0)
		dirs = append(dirs, dir)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return dirs, nil
}

// InsertSession opens a session log row and returns its id.
func (d *Database) InsertSession(directory string, imageCount, intervalSeconds int, startedAt time.Time) (int64, error) {
	const stmt = `
		INSERT INTO session_log (directory, image_count, images_shown, interval_seconds, started_at)
		VALUES (?, ?, 0, ?, ?)
	`
	result, err := d.db.Exec(stmt, directory, imageCount, intervalSeconds, startedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}
	return id, nil
}

// CloseSession finalizes a session log row with how far the pass got.
func (d *Database) CloseSession(id int64, imagesShown int, completed bool, endedAt time.Time) error {
	const stmt = `
		UPDATE session_log
		SET images_shown = ?,
		    completed    = ?,
		    ended_at     = ?
		WHERE id = ?
	`
	_, err := d.db.Exec(stmt, imagesShown, boolToInt(completed), endedAt.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

func (d *Database) GetRecentSessions(limit int) ([]SessionRecord, error) {
	const query = `
		SELECT id, directory, image_count, images_shown, interval_seconds, started_at, ended_at, completed
		FROM session_log
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var (
			rec       SessionRecord
			startedAt int64
			endedAt   sql.NullInt64
			completed int
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Directory,
			&rec.ImageCount,
			&rec.ImagesShown,
			&rec.IntervalSeconds,
			&startedAt,
			&endedAt,
			&completed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0)
		if endedAt.Valid {
			t := time.Unix(endedAt.Int64, 0)
			rec.EndedAt = &t
		}
		rec.Completed = completed != 0
		sessions = append(sessions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (d *Database) Close() error {
	return d.db.Close()
}
