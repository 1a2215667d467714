package projects_models

import (
	"errors"
	"strings"
	"time"

	projects_enums "pmtrack/internal/features/projects/enums"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id;primaryKey"`
	Name        string                       `json:"name"        gorm:"column:name"`
	Description string                       `json:"description" gorm:"column:description"`
	StartDate   time.Time                    `json:"startDate"   gorm:"column:start_date"`
	EndDate     *time.Time                   `json:"endDate"     gorm:"column:end_date"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	IsDeleted   bool                         `json:"isDeleted"   gorm:"column:is_deleted"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("project name is required")
	}

	if p.Status == "" {
		p.Status = projects_enums.ProjectStatusNew
	}

	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return errors.New("project end date is before start date")
	}

	return nil
}

func init() {
	storage.RegisterModels(&Project{}, &ProjectAssignment{}, &ShadowDelegation{})
}
