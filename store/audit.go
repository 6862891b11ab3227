package store

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/campus-hub/permission-service/models"
)

// Actor identifies who is performing a store operation. Filled by the server
// from the authenticated session claims.
type Actor struct {
	ID   string
	Role string
}

// AuditStore reads the audit trail. Writes happen through writeAudit inside
// the mutating stores' transactions so a change and its audit row commit
// together.
type AuditStore struct{ DB *gorm.DB }

func NewAuditStore(db *gorm.DB) *AuditStore { return &AuditStore{DB: db} }

// List returns the most recent audit rows, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []models.AuditLog
	err := s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// writeAudit appends one audit row within tx. payload is snapshotted as JSON;
// a marshal failure records a null payload rather than aborting the change.
func writeAudit(tx *gorm.DB, actor Actor, action, targetTable, targetID string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("null")
	}
	row := models.AuditLog{
		ID:          models.NewID(),
		ActorID:     actor.ID,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Payload:     raw,
		CreatedAt:   time.Now().UTC(),
	}
	return tx.Create(&row).Error
}
