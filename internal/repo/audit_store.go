package repo

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stockroom/internal/models"
)

type AuditStore struct{ db *gorm.DB }

func NewAuditStore(db *gorm.DB) *AuditStore { return &AuditStore{db: db} }

// Record пишет одну запись аудита. details сериализуется в JSON-колонку;
// несериализуемые детали просто опускаются.
func (s *AuditStore) Record(ctx context.Context, actorID uint, action, entity, entityID string, details any) error {
	e := models.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			e.Details = datatypes.JSON(b)
		}
	}
	return s.db.WithContext(ctx).Create(&e).Error
}
