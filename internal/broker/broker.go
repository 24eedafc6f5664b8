package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Wardrobe/internal/colony"
	"github.com/MikeSquared-Agency/Wardrobe/internal/config"
	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/hermes"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
	"github.com/MikeSquared-Agency/Wardrobe/internal/scoring"
	"github.com/MikeSquared-Agency/Wardrobe/internal/store"
)

var (
	ErrNoAgent         = errors.New("agent or agent_id is required")
	ErrAlreadyAssigned = errors.New("stat is already assigned in this outfit")
	ErrOutfitExists    = errors.New("outfit id already in use")
)

// Broker owns the in-memory outfit state and keeps the store and the event
// bus in step with it.
type Broker struct {
	store      store.Store
	hermes     hermes.Client
	colony     colony.Client
	stats      *defs.Database
	outfits    *outfit.Database
	aggregator *priorities.Aggregator
	scorer     *scoring.Scorer
	cfg        *config.Config
	logger     *slog.Logger

	savedMu     sync.Mutex
	saved       map[int][]byte
	savedTables []byte

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, h hermes.Client, c colony.Client, stats *defs.Database, cfg *config.Config, logger *slog.Logger) *Broker {
	outfits := outfit.NewDatabase()
	agg := priorities.NewAggregator(stats, logger)
	var cache *scoring.WornCache
	if cfg.Cache.Enabled {
		cache = scoring.NewWornCache()
	}

	return &Broker{
		store:      s,
		hermes:     h,
		colony:     c,
		stats:      stats,
		outfits:    outfits,
		aggregator: agg,
		scorer:     scoring.NewScorer(outfits, agg, cache, logger),
		cfg:        cfg,
		logger:     logger,
		saved:      make(map[int][]byte),
		stopCh:     make(chan struct{}),
	}
}

func (b *Broker) Stats() *defs.Database              { return b.stats }
func (b *Broker) Outfits() *outfit.Database          { return b.outfits }
func (b *Broker) Aggregator() *priorities.Aggregator { return b.aggregator }
func (b *Broker) Scorer() *scoring.Scorer            { return b.scorer }

// Bootstrap restores work type tables and outfits from the store, generating
// defaults for whichever is empty.
func (b *Broker) Bootstrap(ctx context.Context) error {
	if err := b.loadTables(ctx); err != nil {
		return err
	}
	return b.loadOutfits(ctx)
}

func (b *Broker) loadTables(ctx context.Context) error {
	snaps, err := b.store.ListWorktypeTables(ctx)
	if err != nil {
		return fmt.Errorf("list worktype tables: %w", err)
	}
	if len(snaps) > 0 {
		if missing := b.aggregator.Load(snaps); len(missing) > 0 {
			b.logger.Warn("dropped worktype entries for unknown stats", "stats", missing)
		}
		b.logger.Info("worktype tables loaded", "count", len(snaps))
		b.markTablesSaved(b.aggregator.Snapshots())
		return nil
	}

	if err := b.aggregator.Initialize(); err != nil {
		return fmt.Errorf("initialize worktype tables: %w", err)
	}
	tables := b.aggregator.Snapshots()
	if err := b.store.SaveWorktypeTables(ctx, tables); err != nil {
		return fmt.Errorf("save worktype tables: %w", err)
	}
	b.markTablesSaved(tables)
	// Table events are not tied to an outfit and use id 0.
	e := &store.OutfitEvent{Event: store.EventTablesInitialized, Actor: "system", Payload: map[string]interface{}{"count": len(tables)}}
	if err := b.store.CreateOutfitEvent(ctx, e); err != nil {
		b.logger.Warn("failed to record table initialization", "error", err)
	}
	b.logger.Info("worktype tables initialized", "count", len(tables))
	return nil
}

func (b *Broker) loadOutfits(ctx context.Context) error {
	snaps, err := b.store.ListOutfits(ctx)
	if err != nil {
		return fmt.Errorf("list outfits: %w", err)
	}
	if len(snaps) > 0 {
		for _, snap := range snaps {
			o, missing := outfit.FromSnapshot(snap, b.stats)
			if len(missing) > 0 {
				b.logger.Warn("dropped priorities for unknown stats", "outfit_id", snap.ID, "stats", missing)
			}
			if err := b.outfits.Add(o); err != nil {
				b.logger.Warn("skipping stored outfit", "outfit_id", snap.ID, "error", err)
				continue
			}
			b.markSaved(o.Snapshot())
		}
		b.logger.Info("outfits loaded", "count", b.outfits.Len())
		return nil
	}

	// A broken catalog must not keep the service down; whatever was
	// generated before the failure is kept.
	if err := outfit.GenerateStartingOutfits(b.outfits, b.stats, b.cfg.Defaults.Vanilla); err != nil {
		b.logger.Error("failed to generate starting outfits", "error", err)
	}
	for _, o := range b.outfits.All() {
		b.persist(ctx, o)
		b.record(ctx, o, store.EventOutfitsSeeded, "system", nil)
	}
	b.logger.Info("starting outfits generated", "count", b.outfits.Len(), "vanilla", b.cfg.Defaults.Vanilla)
	return nil
}

func (b *Broker) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.syncLoop(ctx)
}

// Stop ends the sync loop and writes out anything still unsaved.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
	b.Flush(context.Background())
}

func (b *Broker) syncLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.SyncInterval())
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Flush(ctx)
		}
	}
}

// Flush persists outfits and work type tables that changed outside an
// explicit mutation, such as seasonal targets or lazily created tables.
func (b *Broker) Flush(ctx context.Context) {
	for _, o := range b.outfits.All() {
		if b.dirty(o.Snapshot()) {
			b.persist(ctx, o)
		}
	}

	tables := b.aggregator.Snapshots()
	data, err := json.Marshal(tables)
	if err != nil {
		return
	}
	b.savedMu.Lock()
	same := bytes.Equal(data, b.savedTables)
	b.savedMu.Unlock()
	if same {
		return
	}
	if err := b.store.SaveWorktypeTables(ctx, tables); err != nil {
		b.logger.Error("failed to save worktype tables", "error", err)
		return
	}
	b.markTablesSaved(tables)
}

func (b *Broker) dirty(snap outfit.Snapshot) bool {
	data, err := json.Marshal(snap)
	if err != nil {
		return true
	}
	b.savedMu.Lock()
	defer b.savedMu.Unlock()
	return !bytes.Equal(data, b.saved[snap.ID])
}

func (b *Broker) markSaved(snap outfit.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	b.savedMu.Lock()
	b.saved[snap.ID] = data
	b.savedMu.Unlock()
}

func (b *Broker) markTablesSaved(tables []priorities.TableSnapshot) {
	data, err := json.Marshal(tables)
	if err != nil {
		return
	}
	b.savedMu.Lock()
	b.savedTables = data
	b.savedMu.Unlock()
}

// persist writes the outfit. Failures are logged and retried by the sync
// loop since the snapshot stays dirty.
func (b *Broker) persist(ctx context.Context, o *outfit.Outfit) {
	snap := o.Snapshot()
	if err := b.store.SaveOutfit(ctx, snap); err != nil {
		b.logger.Error("failed to save outfit", "outfit_id", snap.ID, "error", err)
		return
	}
	b.markSaved(snap)
}

// record writes the audit event and publishes it on the bus.
func (b *Broker) record(ctx context.Context, o *outfit.Outfit, event, actor string, detail map[string]interface{}) {
	e := &store.OutfitEvent{OutfitID: o.ID(), Event: event, Actor: actor, Payload: detail}
	if err := b.store.CreateOutfitEvent(ctx, e); err != nil {
		b.logger.Warn("failed to record outfit event", "outfit_id", o.ID(), "event", event, "error", err)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	subject := subjectFor(o.ID(), event)
	if b.hermes == nil || subject == "" {
		return
	}
	msg := hermes.OutfitEvent{
		EventID:   e.ID.String(),
		OutfitID:  o.ID(),
		Label:     o.Label(),
		Event:     event,
		Actor:     actor,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
	if err := b.hermes.Publish(subject, msg); err != nil {
		b.logger.Warn("failed to publish outfit event", "subject", subject, "error", err)
	}
}

func subjectFor(outfitID int, event string) string {
	switch event {
	case store.EventOutfitCreated:
		return hermes.SubjectOutfitCreated(outfitID)
	case store.EventOutfitUpdated:
		return hermes.SubjectOutfitUpdated(outfitID)
	case store.EventOutfitDeleted:
		return hermes.SubjectOutfitDeleted(outfitID)
	case store.EventPriorityReset:
		return hermes.SubjectPriorityReset(outfitID)
	}
	return ""
}

// SetupSubscriptions registers NATS subscriptions for colony ticks.
func (b *Broker) SetupSubscriptions() {
	if b.hermes == nil {
		return
	}

	_ = b.hermes.Subscribe(hermes.SubjectColonyTick, func(_ string, data []byte) {
		var evt hermes.TickEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			b.logger.Warn("invalid tick event", "error", err)
			return
		}
		b.Advance(evt.Tick, evt.SelectedAgent)
	})
}

// Advance moves the worn-score cache to a new tick and selected agent.
func (b *Broker) Advance(tick int64, agentID string) {
	cache := b.scorer.Cache()
	if cache == nil {
		return
	}
	cache.Advance(tick, agentID)
	b.logger.Debug("colony tick", "tick", tick, "selected_agent", agentID)
}

// Events returns the audit trail of an outfit, newest first.
func (b *Broker) Events(ctx context.Context, outfitID, limit int) ([]*store.OutfitEvent, error) {
	return b.store.GetOutfitEvents(ctx, outfitID, limit)
}
