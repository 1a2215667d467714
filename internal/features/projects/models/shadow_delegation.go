package projects_models

import (
	"time"

	"pmtrack/internal/features/access"

	"github.com/google/uuid"
)

// ShadowDelegation lets ShadowResourceID log work attributed to
// ProjectOnBoardUserID on one project.
type ShadowDelegation struct {
	ID                   uuid.UUID `json:"id"                   gorm:"column:id;primaryKey"`
	ProjectID            uuid.UUID `json:"projectId"            gorm:"column:project_id;index"`
	ShadowResourceID     uuid.UUID `json:"shadowResourceId"     gorm:"column:shadow_resource_id;index"`
	ProjectOnBoardUserID uuid.UUID `json:"projectOnBoardUserId" gorm:"column:project_on_board_user_id;index"`
	Role                 string    `json:"role"                 gorm:"column:role"`
	AssignedDate         time.Time `json:"assignedDate"         gorm:"column:assigned_date"`
	IsDeleted            bool      `json:"isDeleted"            gorm:"column:is_deleted"`
}

func (ShadowDelegation) TableName() string {
	return "shadow_delegations"
}

func (d *ShadowDelegation) Subject() access.Subject {
	delegateID := d.ShadowResourceID

	return access.Subject{
		Kind:          access.SubjectDelegation,
		ProjectID:     d.ProjectID,
		BeneficiaryID: d.ProjectOnBoardUserID,
		DelegateID:    &delegateID,
	}
}
