package broker

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/store"
)

// SettingsPatch carries the settings fields a caller wants to change. Nil
// fields are left alone.
type SettingsPatch struct {
	Label                      *string                  `json:"label,omitempty"`
	Filter                     *outfit.Filter           `json:"filter,omitempty"`
	PenaltyWornByCorpse        *bool                    `json:"penalty_worn_by_corpse,omitempty"`
	AutoWorkPriorities         *bool                    `json:"auto_work_priorities,omitempty"`
	TargetTemperaturesOverride *bool                    `json:"target_temperatures_override,omitempty"`
	TargetTemperatures         *outfit.TemperatureRange `json:"target_temperatures,omitempty"`
	AutoTemp                   *bool                    `json:"auto_temp,omitempty"`
	AutoTempOffset             *int                     `json:"auto_temp_offset,omitempty"`
}

// apply writes every patched field under a single settings update.
func (p SettingsPatch) apply(o *outfit.Outfit) {
	o.Update(func(s *outfit.Settings) {
		if p.TargetTemperatures != nil {
			s.TargetTemperatures = *p.TargetTemperatures
			s.TargetTemperaturesOverride = true
		}
		if p.Label != nil {
			s.Label = *p.Label
		}
		if p.Filter != nil {
			s.Filter = *p.Filter
		}
		if p.PenaltyWornByCorpse != nil {
			s.PenaltyWornByCorpse = *p.PenaltyWornByCorpse
		}
		if p.AutoWorkPriorities != nil {
			s.AutoWorkPriorities = *p.AutoWorkPriorities
		}
		if p.TargetTemperaturesOverride != nil {
			s.TargetTemperaturesOverride = *p.TargetTemperaturesOverride
			if !s.TargetTemperaturesOverride {
				s.AutoTemp = false
			}
		}
		if p.AutoTemp != nil {
			s.AutoTemp = *p.AutoTemp
		}
		if p.AutoTempOffset != nil {
			s.AutoTempOffset = *p.AutoTempOffset
		}
	})
}

// mutate applies fn to an outfit and, on success, persists it and records
// the event.
func (b *Broker) mutate(ctx context.Context, id int, event, actor string, detail map[string]interface{}, fn func(o *outfit.Outfit) error) (*outfit.Outfit, error) {
	o, ok := b.outfits.Get(id)
	if !ok {
		return nil, outfit.ErrNotFound
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	b.persist(ctx, o)
	b.record(ctx, o, event, actor, detail)
	return o, nil
}

func (b *Broker) GetOutfit(id int) (*outfit.Outfit, error) {
	o, ok := b.outfits.Get(id)
	if !ok {
		return nil, outfit.ErrNotFound
	}
	return o, nil
}

// CreateOutfit makes an outfit with default settings and no priorities.
func (b *Broker) CreateOutfit(ctx context.Context, label, actor string) *outfit.Outfit {
	o := b.outfits.MakeNewOutfit(label)
	b.persist(ctx, o)
	b.record(ctx, o, store.EventOutfitCreated, actor, map[string]interface{}{"label": label})
	b.logger.Info("outfit created", "outfit_id", o.ID(), "label", label)
	return o
}

// ImportLegacy converts a plain outfit into a preference profile under its
// original id.
func (b *Broker) ImportLegacy(ctx context.Context, l outfit.Legacy, actor string) (*outfit.Outfit, error) {
	if _, ok := b.outfits.Get(l.ID); ok {
		return nil, fmt.Errorf("%w: %d", ErrOutfitExists, l.ID)
	}
	o, err := outfit.FromLegacy(l, b.stats)
	if err != nil {
		return nil, err
	}
	if err := b.outfits.Add(o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutfitExists, err)
	}
	b.persist(ctx, o)
	b.record(ctx, o, store.EventOutfitCreated, actor, map[string]interface{}{"label": l.Label, "legacy": true})
	return o, nil
}

func (b *Broker) UpdateOutfit(ctx context.Context, id int, patch SettingsPatch, actor string) (*outfit.Outfit, error) {
	return b.mutate(ctx, id, store.EventOutfitUpdated, actor, map[string]interface{}{"change": "settings"}, func(o *outfit.Outfit) error {
		patch.apply(o)
		return nil
	})
}

func (b *Broker) DeleteOutfit(ctx context.Context, id int, actor string) error {
	o, ok := b.outfits.Get(id)
	if !ok {
		return outfit.ErrNotFound
	}
	b.outfits.Remove(id)
	if err := b.store.DeleteOutfit(ctx, id); err != nil {
		b.logger.Error("failed to delete outfit", "outfit_id", id, "error", err)
	}
	b.savedMu.Lock()
	delete(b.saved, id)
	b.savedMu.Unlock()
	b.record(ctx, o, store.EventOutfitDeleted, actor, nil)
	b.logger.Info("outfit deleted", "outfit_id", id)
	return nil
}

// CopyOutfit replaces dst's settings and priorities with those of src.
func (b *Broker) CopyOutfit(ctx context.Context, dst, src int, actor string) (*outfit.Outfit, error) {
	from, ok := b.outfits.Get(src)
	if !ok {
		return nil, fmt.Errorf("source %w", outfit.ErrNotFound)
	}
	return b.mutate(ctx, dst, store.EventOutfitUpdated, actor, map[string]interface{}{"change": "copy", "source": src}, func(o *outfit.Outfit) error {
		o.CopyFrom(from)
		return nil
	})
}

// AddStat assigns a new Manual priority to the outfit.
func (b *Broker) AddStat(ctx context.Context, id int, stat string, weight float64, actor string) (*outfit.Outfit, error) {
	def, ok := b.stats.Stat(stat)
	if !ok {
		return nil, fmt.Errorf("%w: %s", outfit.ErrUnknownStat, stat)
	}
	detail := map[string]interface{}{"change": "stat.added", "stat": stat, "weight": weight}
	return b.mutate(ctx, id, store.EventOutfitUpdated, actor, detail, func(o *outfit.Outfit) error {
		if !o.AddStatPriorityIfAbsent(def, clampWeight(weight), outfit.Manual) {
			return ErrAlreadyAssigned
		}
		return nil
	})
}

// SetStatWeight edits a stat's weight. Automatic entries become Override.
func (b *Broker) SetStatWeight(ctx context.Context, id int, stat string, weight float64, actor string) (*outfit.StatPriority, error) {
	var updated outfit.StatPriority
	detail := map[string]interface{}{"change": "stat.weight", "stat": stat, "weight": weight}
	_, err := b.mutate(ctx, id, store.EventOutfitUpdated, actor, detail, func(o *outfit.Outfit) error {
		sp, err := o.SetWeight(stat, clampWeight(weight))
		updated = sp
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveStat deletes a user-added priority. Entries that came from defaults
// can only be reset.
func (b *Broker) RemoveStat(ctx context.Context, id int, stat, actor string) error {
	_, err := b.mutate(ctx, id, store.EventOutfitUpdated, actor, map[string]interface{}{"change": "stat.removed", "stat": stat}, func(o *outfit.Outfit) error {
		found := false
		for _, sp := range o.StatPriorities() {
			if sp.Stat().Name != stat {
				continue
			}
			found = true
			if sp.Assignment() != outfit.Manual {
				return outfit.ErrNotManual
			}
		}
		if !found {
			return outfit.ErrNotAssigned
		}
		o.RemoveStatPriority(stat)
		return nil
	})
	return err
}

// ResetStat restores an overridden priority to its default weight.
func (b *Broker) ResetStat(ctx context.Context, id int, stat, actor string) (*outfit.StatPriority, error) {
	var reset outfit.StatPriority
	_, err := b.mutate(ctx, id, store.EventPriorityReset, actor, map[string]interface{}{"stat": stat}, func(o *outfit.Outfit) error {
		sp, err := o.ResetStatPriority(stat)
		reset = sp
		return err
	})
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// ResetTemperatures clears the target override and restores the full range.
func (b *Broker) ResetTemperatures(ctx context.Context, id int, actor string) (*outfit.Outfit, error) {
	return b.mutate(ctx, id, store.EventOutfitUpdated, actor, map[string]interface{}{"change": "temperatures.reset"}, func(o *outfit.Outfit) error {
		o.ResetTargetTemperatures()
		return nil
	})
}

func clampWeight(w float64) float64 {
	if w > outfit.MaxWeight {
		return outfit.MaxWeight
	}
	if w < -outfit.MaxWeight {
		return -outfit.MaxWeight
	}
	return w
}
