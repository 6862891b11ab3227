package models

import (
	"encoding/json"
	"time"
)

// AuditLog records one permission mutation: who did what to which row, with a
// JSON snapshot of the payload. Written in the same transaction as the change.
type AuditLog struct {
	ID          string          `gorm:"column:id;primaryKey" json:"id"`
	ActorID     string          `gorm:"column:actor_id;index" json:"actor_id"`
	Action      string          `gorm:"column:action" json:"action"`
	TargetTable string          `gorm:"column:target_table" json:"target_table"`
	TargetID    string          `gorm:"column:target_id;index" json:"target_id"`
	Payload     json.RawMessage `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt   time.Time       `gorm:"column:created_at;index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
