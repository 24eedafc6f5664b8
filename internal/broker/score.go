package broker

import (
	"context"
	"fmt"
	"sort"

	"github.com/MikeSquared-Agency/Wardrobe/internal/colony"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/scoring"
)

// ScoreRequest asks for candidate apparel to be ranked for one agent. The
// agent is either inlined or fetched from the colony by id.
type ScoreRequest struct {
	AgentID string               `json:"agent_id,omitempty"`
	Agent   *colony.AgentState   `json:"agent,omitempty"`
	Items   []colony.ItemState   `json:"items"`
	Warmth  scoring.NeededWarmth `json:"warmth"`
	Tick    *int64               `json:"tick,omitempty"`
	Explain bool                 `json:"explain,omitempty"`
}

// ItemScore is one ranked candidate.
type ItemScore struct {
	scoring.ScoringResult
	Gain float64 `json:"gain"`
}

type ScoreResponse struct {
	AgentID  string      `json:"agent_id"`
	OutfitID int         `json:"outfit_id"`
	Tick     int64       `json:"tick"`
	Results  []ItemScore `json:"results"`
}

func (b *Broker) resolveAgent(ctx context.Context, id string, inline *colony.AgentState) (*colony.AgentState, error) {
	if inline != nil {
		return inline, nil
	}
	if id == "" {
		return nil, ErrNoAgent
	}
	if b.colony == nil {
		return nil, fmt.Errorf("no colony configured to look up agent %s", id)
	}
	state, err := b.colony.GetAgent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get agent %s: %w", id, err)
	}
	return state, nil
}

// Score ranks the candidate items for the agent. Items the outfit filter
// rejects sort after allowed ones; within each group higher scores come
// first.
func (b *Broker) Score(ctx context.Context, req ScoreRequest) (*ScoreResponse, error) {
	state, err := b.resolveAgent(ctx, req.AgentID, req.Agent)
	if err != nil {
		return nil, err
	}
	agent := state.Agent()

	var tick int64
	if req.Tick != nil {
		tick = *req.Tick
	} else if cache := b.scorer.Cache(); cache != nil {
		tick, _ = cache.Tick()
	}

	resp := &ScoreResponse{AgentID: agent.ID(), OutfitID: agent.OutfitID(), Tick: tick}
	for i := range req.Items {
		item := req.Items[i].Item()
		res := b.scorer.Explain(agent, item, req.Warmth)
		if !req.Explain {
			res.Factors = nil
		}
		resp.Results = append(resp.Results, ItemScore{
			ScoringResult: res,
			Gain:          b.scorer.ScoreGainFrom(res.TotalScore, agent, item, req.Warmth, tick),
		})
	}
	sort.SliceStable(resp.Results, func(i, j int) bool {
		a, c := resp.Results[i], resp.Results[j]
		if a.Allowed != c.Allowed {
			return a.Allowed
		}
		return a.TotalScore > c.TotalScore
	})
	return resp, nil
}

// DerivePriorities returns the Individual priorities the agent's work
// assignments produce.
func (b *Broker) DerivePriorities(ctx context.Context, agentID string) ([]outfit.PrioritySnapshot, error) {
	state, err := b.resolveAgent(ctx, agentID, nil)
	if err != nil {
		return nil, err
	}
	derived := b.scorer.Derive(state.Agent())
	out := make([]outfit.PrioritySnapshot, 0, len(derived))
	for _, sp := range derived {
		out = append(out, outfit.SnapshotOf(*sp))
	}
	return out, nil
}

// AgentSummary pairs a colony agent with the outfit it is assigned.
type AgentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OutfitID    int    `json:"outfit_id"`
	OutfitLabel string `json:"outfit_label,omitempty"`
}

// Agents lists the colony's agents with their outfit labels. Agents whose
// outfit is unknown are listed without a label.
func (b *Broker) Agents(ctx context.Context) ([]AgentSummary, error) {
	if b.colony == nil {
		return nil, fmt.Errorf("no colony configured")
	}
	states, err := b.colony.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	out := make([]AgentSummary, 0, len(states))
	for _, s := range states {
		sum := AgentSummary{ID: s.ID, Name: s.Name, OutfitID: s.OutfitID}
		if o, ok := b.outfits.Get(s.OutfitID); ok {
			sum.OutfitLabel = o.Label()
		}
		out = append(out, sum)
	}
	return out, nil
}
