package audit

import "time"

// Entry is one consumed lifecycle event. EventID is the outbox row id, so a
// redelivered message maps onto the same row.
type Entry struct {
	EventID       string    `gorm:"type:uuid;primaryKey"`
	EventType     string    `gorm:"type:varchar(100);not null;index"`
	AggregateType string    `gorm:"type:varchar(50);not null"`
	AggregateID   string    `gorm:"type:uuid;not null;index"`
	OwnerID       string    `gorm:"type:uuid;not null;index"`
	CompanyID     string    `gorm:"type:varchar(36)"`
	RequestID     string    `gorm:"type:varchar(100)"`
	OccurredAt    time.Time `gorm:"not null"`
	RecordedAt    time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "audit_entries"
}
