package hermes

import "time"

// OutfitEvent is published whenever an outfit changes.
type OutfitEvent struct {
	EventID   string                 `json:"event_id"`
	OutfitID  int                    `json:"outfit_id"`
	Label     string                 `json:"label"`
	Event     string                 `json:"event"`
	Actor     string                 `json:"actor,omitempty"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// TickEvent is sent by the colony host when simulation time advances or the
// player selects another agent.
type TickEvent struct {
	Tick          int64  `json:"tick"`
	SelectedAgent string `json:"selected_agent"`
}
