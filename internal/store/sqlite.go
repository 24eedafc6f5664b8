package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS wardrobe_outfits (
	id         INTEGER PRIMARY KEY,
	label      TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS wardrobe_worktype_tables (
	work_type TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	entries   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wardrobe_outfit_events (
	id         TEXT PRIMARY KEY,
	outfit_id  INTEGER NOT NULL,
	event      TEXT NOT NULL,
	actor      TEXT NOT NULL DEFAULT '',
	payload    TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wardrobe_outfit_events_outfit ON wardrobe_outfit_events(outfit_id, created_at);
`

// SQLiteStore keeps state in a local SQLite file.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" && !strings.Contains(path, "?") {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type outfitRow struct {
	Data string `db:"data"`
}

func (s *SQLiteStore) ListOutfits(ctx context.Context) ([]outfit.Snapshot, error) {
	var rows []outfitRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT data FROM wardrobe_outfits ORDER BY id`); err != nil {
		return nil, err
	}
	out := make([]outfit.Snapshot, 0, len(rows))
	for _, r := range rows {
		var snap outfit.Snapshot
		if err := json.Unmarshal([]byte(r.Data), &snap); err != nil {
			return nil, fmt.Errorf("decode outfit: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}

func (s *SQLiteStore) GetOutfit(ctx context.Context, id int) (*outfit.Snapshot, error) {
	var r outfitRow
	err := s.db.GetContext(ctx, &r, `SELECT data FROM wardrobe_outfits WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap outfit.Snapshot
	if err := json.Unmarshal([]byte(r.Data), &snap); err != nil {
		return nil, fmt.Errorf("decode outfit %d: %w", id, err)
	}
	return &snap, nil
}

func (s *SQLiteStore) SaveOutfit(ctx context.Context, snap outfit.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wardrobe_outfits (id, label, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET label = excluded.label, data = excluded.data, updated_at = excluded.updated_at`,
		snap.ID, snap.Settings.Label, string(data), time.Now().UTC(),
	)
	return err
}

func (s *SQLiteStore) DeleteOutfit(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM wardrobe_outfits WHERE id = ?`, id)
	return err
}

type worktypeRow struct {
	WorkType string `db:"work_type"`
	Entries  string `db:"entries"`
}

func (s *SQLiteStore) ListWorktypeTables(ctx context.Context) ([]priorities.TableSnapshot, error) {
	var rows []worktypeRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT work_type, entries FROM wardrobe_worktype_tables ORDER BY position`); err != nil {
		return nil, err
	}
	out := make([]priorities.TableSnapshot, 0, len(rows))
	for _, r := range rows {
		t := priorities.TableSnapshot{WorkType: r.WorkType}
		if err := json.Unmarshal([]byte(r.Entries), &t.Entries); err != nil {
			return nil, fmt.Errorf("decode worktype table %s: %w", r.WorkType, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *SQLiteStore) SaveWorktypeTables(ctx context.Context, tables []priorities.TableSnapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wardrobe_worktype_tables`); err != nil {
		return err
	}
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO wardrobe_worktype_tables (work_type, position, entries) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tables {
		entries, err := json.Marshal(t.Entries)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, t.WorkType, i, string(entries)); err != nil {
			return fmt.Errorf("insert worktype table %s: %w", t.WorkType, err)
		}
	}
	return tx.Commit()
}

type eventRow struct {
	ID        string         `db:"id"`
	OutfitID  int            `db:"outfit_id"`
	Event     string         `db:"event"`
	Actor     string         `db:"actor"`
	Payload   sql.NullString `db:"payload"`
	CreatedAt time.Time      `db:"created_at"`
}

func (s *SQLiteStore) CreateOutfitEvent(ctx context.Context, e *OutfitEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()
	var payload sql.NullString
	if e.Payload != nil {
		data, err := json.Marshal(e.Payload)
		if err != nil {
			return err
		}
		payload = sql.NullString{String: string(data), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wardrobe_outfit_events (id, outfit_id, event, actor, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.OutfitID, e.Event, e.Actor, payload, e.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetOutfitEvents(ctx context.Context, outfitID int, limit int) ([]*OutfitEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, outfit_id, event, actor, payload, created_at
		FROM wardrobe_outfit_events WHERE outfit_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, outfitID, limit); err != nil {
		return nil, err
	}
	events := make([]*OutfitEvent, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("event id %q: %w", r.ID, err)
		}
		e := &OutfitEvent{ID: id, OutfitID: r.OutfitID, Event: r.Event, Actor: r.Actor, CreatedAt: r.CreatedAt}
		if r.Payload.Valid {
			_ = json.Unmarshal([]byte(r.Payload.String), &e.Payload)
		}
		events = append(events, e)
	}
	return events, nil
}
