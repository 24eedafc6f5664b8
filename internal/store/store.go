package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
)

// Outfit event types recorded in the audit log.
const (
	EventOutfitCreated     = "outfit.created"
	EventOutfitUpdated     = "outfit.updated"
	EventOutfitDeleted     = "outfit.deleted"
	EventPriorityReset     = "outfit.priority.reset"
	EventOutfitsSeeded     = "outfits.seeded"
	EventTablesInitialized = "worktypes.initialized"
)

// OutfitEvent is an audit record of a change to an outfit.
type OutfitEvent struct {
	ID        uuid.UUID              `json:"id"`
	OutfitID  int                    `json:"outfit_id"`
	Event     string                 `json:"event"`
	Actor     string                 `json:"actor,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type Store interface {
	// Outfits. GetOutfit returns nil, nil when the outfit does not exist.
	ListOutfits(ctx context.Context) ([]outfit.Snapshot, error)
	GetOutfit(ctx context.Context, id int) (*outfit.Snapshot, error)
	SaveOutfit(ctx context.Context, s outfit.Snapshot) error
	DeleteOutfit(ctx context.Context, id int) error

	// Work type tables, kept in the order they were saved.
	ListWorktypeTables(ctx context.Context) ([]priorities.TableSnapshot, error)
	SaveWorktypeTables(ctx context.Context, tables []priorities.TableSnapshot) error

	// Audit
	CreateOutfitEvent(ctx context.Context, e *OutfitEvent) error
	GetOutfitEvents(ctx context.Context, outfitID int, limit int) ([]*OutfitEvent, error)

	Close() error
}
