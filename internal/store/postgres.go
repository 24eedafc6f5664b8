package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS wardrobe_outfits (
	id         INTEGER PRIMARY KEY,
	label      TEXT NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS wardrobe_worktype_tables (
	work_type TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	entries   JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS wardrobe_outfit_events (
	id         UUID PRIMARY KEY,
	outfit_id  INTEGER NOT NULL,
	event      TEXT NOT NULL,
	actor      TEXT NOT NULL DEFAULT '',
	payload    JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_wardrobe_outfit_events_outfit ON wardrobe_outfit_events(outfit_id, created_at);
`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListOutfits(ctx context.Context) ([]outfit.Snapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM wardrobe_outfits ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []outfit.Snapshot
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var snap outfit.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode outfit: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetOutfit(ctx context.Context, id int) (*outfit.Snapshot, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM wardrobe_outfits WHERE id = $1`, id).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap outfit.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode outfit %d: %w", id, err)
	}
	return &snap, nil
}

func (s *PostgresStore) SaveOutfit(ctx context.Context, snap outfit.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO wardrobe_outfits (id, label, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, data = EXCLUDED.data, updated_at = now()`,
		snap.ID, snap.Settings.Label, data,
	)
	return err
}

func (s *PostgresStore) DeleteOutfit(ctx context.Context, id int) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM wardrobe_outfits WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) ListWorktypeTables(ctx context.Context) ([]priorities.TableSnapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT work_type, entries FROM wardrobe_worktype_tables ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []priorities.TableSnapshot
	for rows.Next() {
		var t priorities.TableSnapshot
		var entries []byte
		if err := rows.Scan(&t.WorkType, &entries); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(entries, &t.Entries); err != nil {
			return nil, fmt.Errorf("decode worktype table %s: %w", t.WorkType, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveWorktypeTables(ctx context.Context, tables []priorities.TableSnapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM wardrobe_worktype_tables`); err != nil {
		return err
	}
	for i, t := range tables {
		entries, err := json.Marshal(t.Entries)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO wardrobe_worktype_tables (work_type, position, entries) VALUES ($1, $2, $3)`,
			t.WorkType, i, entries,
		); err != nil {
			return fmt.Errorf("insert worktype table %s: %w", t.WorkType, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) CreateOutfitEvent(ctx context.Context, e *OutfitEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	payload, _ := json.Marshal(e.Payload)
	return s.pool.QueryRow(ctx, `
		INSERT INTO wardrobe_outfit_events (id, outfit_id, event, actor, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		e.ID, e.OutfitID, e.Event, e.Actor, payload,
	).Scan(&e.CreatedAt)
}

func (s *PostgresStore) GetOutfitEvents(ctx context.Context, outfitID int, limit int) ([]*OutfitEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, outfit_id, event, actor, payload, created_at
		FROM wardrobe_outfit_events WHERE outfit_id = $1
		ORDER BY created_at DESC LIMIT $2`, outfitID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*OutfitEvent
	for rows.Next() {
		e := &OutfitEvent{}
		var payload []byte
		if err := rows.Scan(&e.ID, &e.OutfitID, &e.Event, &e.Actor, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		if payload != nil {
			_ = json.Unmarshal(payload, &e.Payload)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
