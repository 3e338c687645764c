package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry — след админских операций записи (create/update/delete).
// Пишется best-effort, ошибку записи наружу не поднимаем.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ActorID  uint           `gorm:"index" json:"actor_id"`
	Action   string         `gorm:"size:64;not null" json:"action"` // inventory.create | inventory.update | inventory.delete
	Entity   string         `gorm:"size:64;not null" json:"entity"`
	EntityID string         `gorm:"size:36;index" json:"entity_id"`
	Details  datatypes.JSON `json:"details,omitempty"`
}
