package worklogs_models

import (
	"errors"
	"strings"
	"time"

	"pmtrack/internal/features/access"
	worklogs_enums "pmtrack/internal/features/worklogs/enums"
	"pmtrack/internal/storage"
	time_utils "pmtrack/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinHours             = 0.1
	MaxHours             = 24.0
	MaxDescriptionLength = 500
	MaxTaskTypeLength    = 50
)

var (
	ErrAttributionMismatch = errors.New("shadow flag does not match shadow resource")
	ErrSelfDelegated       = errors.New("delegated worklog cannot be written by its beneficiary")
)

// Worklog columns keep the flag and the nullable shadow resource id, the
// rest of the code goes through Attribution.
type Worklog struct {
	ID                      uuid.UUID                    `json:"id"                      gorm:"column:id;primaryKey"`
	ProjectID               uuid.UUID                    `json:"projectId"               gorm:"column:project_id;index"`
	UserID                  uuid.UUID                    `json:"userId"                  gorm:"column:user_id;index"`
	ShadowResourceID        *uuid.UUID                   `json:"shadowResourceId"        gorm:"column:shadow_resource_id"`
	IsShadowResourceWorklog bool                         `json:"isShadowResourceWorklog" gorm:"column:is_shadow_resource_worklog"`
	Date                    time.Time                    `json:"date"                    gorm:"column:date"`
	HoursWorked             float64                      `json:"hoursWorked"             gorm:"column:hours_worked"`
	Description             string                       `json:"description"             gorm:"column:description"`
	TaskType                string                       `json:"taskType"                gorm:"column:task_type"`
	Status                  worklogs_enums.WorklogStatus `json:"status"                  gorm:"column:status"`
	CreatedAt               time.Time                    `json:"createdAt"               gorm:"column:created_at"`
	UpdatedAt               *time.Time                   `json:"updatedAt"               gorm:"column:updated_at;autoUpdateTime:false"`
	IsDeleted               bool                         `json:"isDeleted"               gorm:"column:is_deleted"`
}

func (Worklog) TableName() string {
	return "worklogs"
}

func init() {
	storage.RegisterModels(&Worklog{})
}

func (w *Worklog) Attribution() Attribution {
	if w.ShadowResourceID != nil {
		return Delegated(w.UserID, *w.ShadowResourceID)
	}

	return Direct(w.UserID)
}

func (w *Worklog) SetAttribution(attribution Attribution) {
	w.UserID = attribution.BeneficiaryID()
	w.ShadowResourceID = attribution.DelegateID()
	w.IsShadowResourceWorklog = attribution.IsDelegated()
}

func (w *Worklog) Subject() access.Subject {
	attribution := w.Attribution()

	return access.Subject{
		Kind:          access.SubjectWorklog,
		ProjectID:     w.ProjectID,
		BeneficiaryID: attribution.BeneficiaryID(),
		DelegateID:    attribution.DelegateID(),
	}
}

func (w *Worklog) BeforeSave(tx *gorm.DB) error {
	if w.IsShadowResourceWorklog != (w.ShadowResourceID != nil) {
		return ErrAttributionMismatch
	}

	if w.ShadowResourceID != nil && *w.ShadowResourceID == w.UserID {
		return ErrSelfDelegated
	}

	w.Description = strings.TrimSpace(w.Description)
	w.TaskType = strings.TrimSpace(w.TaskType)
	w.HoursWorked = time_utils.RoundHours(w.HoursWorked)
	w.Date = time_utils.TruncateToDay(w.Date)

	if w.Status == "" {
		w.Status = worklogs_enums.WorklogStatusSubmitted
	}

	return nil
}
