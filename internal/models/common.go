package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate генерирует UUID на стороне приложения, если он не задан
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// AuditFields - мягкое удаление и аудит.
// Фильтр is_deleted = false накладывается явно в репозиториях, без gorm.DeletedAt.
type AuditFields struct {
	IsDeleted bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedBy *string    `gorm:"type:varchar(64)" json:"createdBy,omitempty"`
	UpdatedBy *string    `gorm:"type:varchar(64)" json:"updatedBy,omitempty"`
	DeletedBy *string    `gorm:"type:varchar(64)" json:"deletedBy,omitempty"`
}

// MarkDeleted помечает запись удаленной
func (a *AuditFields) MarkDeleted(actorID string, now time.Time) {
	a.IsDeleted = true
	a.DeletedAt = &now
	a.DeletedBy = actorPtr(actorID)
}

// Restore снимает пометку удаления
func (a *AuditFields) Restore(actorID string) {
	a.IsDeleted = false
	a.DeletedAt = nil
	a.DeletedBy = nil
	a.UpdatedBy = actorPtr(actorID)
}

func (a *AuditFields) Touch(actorID string) {
	if p := actorPtr(actorID); p != nil {
		a.UpdatedBy = p
	}
}

func (a *AuditFields) Created(actorID string) {
	a.CreatedBy = actorPtr(actorID)
	a.UpdatedBy = actorPtr(actorID)
}

func actorPtr(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}
