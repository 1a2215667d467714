package projects_models

import (
	"time"

	"pmtrack/internal/features/access"

	"github.com/google/uuid"
)

// ProjectAssignment is a direct membership of a user in a project
type ProjectAssignment struct {
	ID           uuid.UUID `json:"id"           gorm:"column:id;primaryKey"`
	ProjectID    uuid.UUID `json:"projectId"    gorm:"column:project_id;index"`
	UserID       uuid.UUID `json:"userId"       gorm:"column:user_id;index"`
	Role         string    `json:"role"         gorm:"column:role"`
	AssignedDate time.Time `json:"assignedDate" gorm:"column:assigned_date"`
	IsDeleted    bool      `json:"isDeleted"    gorm:"column:is_deleted"`
}

func (ProjectAssignment) TableName() string {
	return "project_assignments"
}

func (a *ProjectAssignment) Subject() access.Subject {
	return access.Subject{
		Kind:          access.SubjectAssignment,
		ProjectID:     a.ProjectID,
		BeneficiaryID: a.UserID,
	}
}
