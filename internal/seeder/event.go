package seeder

import "time"

// SeededEventType identifies a completed reset on the message bus.
const SeededEventType = "database.seeded"

// SeededEventKey is the message key used for every seeded event.
const SeededEventKey = "database-seeded"

// SeededEvent is emitted after both tables have been recreated and filled.
type SeededEvent struct {
	Type      string    `json:"type"`
	Projects  int       `json:"projects"`
	Proposals int       `json:"proposals"`
	SeededAt  time.Time `json:"seeded_at"`
}

// NewSeededEvent stamps an event with the current time.
func NewSeededEvent(projects, proposals int) SeededEvent {
	return SeededEvent{
		Type:      SeededEventType,
		Projects:  projects,
		Proposals: proposals,
		SeededAt:  time.Now().UTC(),
	}
}
