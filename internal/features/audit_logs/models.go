package audit_logs

import (
	"time"

	"pmtrack/internal/storage"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id;primaryKey"`
	UserID    *uuid.UUID `json:"userId"    gorm:"column:user_id;index"`
	ProjectID *uuid.UUID `json:"projectId" gorm:"column:project_id;index"`
	Message   string     `json:"message"   gorm:"column:message"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func init() {
	storage.RegisterModels(&AuditLog{})
}
