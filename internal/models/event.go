package models

// EventType classifies the social action an event records.
type EventType string

const (
	EventTypeLike   EventType = "LIKE"
	EventTypeFriend EventType = "FRIEND"
	EventTypeReview EventType = "REVIEW"
)

// EventOperation is the operation applied to the event's target entity.
type EventOperation string

const (
	EventOperationAdd    EventOperation = "ADD"
	EventOperationRemove EventOperation = "REMOVE"
	EventOperationUpdate EventOperation = "UPDATE"
)

// Event is one entry of a user's activity feed. Events are append-only:
// rows are never updated or deleted once written.
type Event struct {
	ID        uint           `gorm:"primaryKey" json:"event_id"`
	Timestamp int64          `gorm:"not null;index" json:"timestamp"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	EventType EventType      `gorm:"type:varchar(10);not null" json:"event_type"`
	Operation EventOperation `gorm:"type:varchar(10);not null" json:"operation"`
	EntityID  uint           `gorm:"not null" json:"entity_id"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
