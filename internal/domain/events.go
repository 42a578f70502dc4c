package domain

import "time"

// StoreEvent is published after every committed store mutation. Subscribers
// (the auto-sync worker) only care that something changed, not what.
type StoreEvent struct {
	EventType string    `json:"event_type"`
	EntityID  string    `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventFoodCreated   = "food.created"
	EventFoodDeleted   = "food.deleted"
	EventOrderCreated  = "order.created"
	EventOrderUpdated  = "order.updated"
	EventOrderDeleted  = "order.deleted"
	EventStoreReplaced = "store.replaced"
	EventStoreMigrated = "store.migrated"
)
