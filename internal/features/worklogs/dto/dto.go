package worklogs_dto

import (
	"time"

	worklogs_enums "pmtrack/internal/features/worklogs/enums"
	worklogs_models "pmtrack/internal/features/worklogs/models"

	"github.com/google/uuid"
)

type CreateWorklogRequestDTO struct {
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
	// beneficiary, defaults to the caller
	UserID      *uuid.UUID                   `json:"userId"`
	Date        string                       `json:"date"        binding:"required"`
	HoursWorked float64                      `json:"hoursWorked"`
	Description string                       `json:"description"`
	TaskType    string                       `json:"taskType"`
	Status      worklogs_enums.WorklogStatus `json:"status"`
}

type BulkWorklogRowDTO struct {
	HoursWorked float64                      `json:"hoursWorked"`
	Description string                       `json:"description"`
	TaskType    string                       `json:"taskType"`
	Status      worklogs_enums.WorklogStatus `json:"status"`
}

// Rows share project, beneficiary, actor and date
type BulkCreateWorklogsRequestDTO struct {
	ProjectID uuid.UUID           `json:"projectId" binding:"required"`
	UserID    *uuid.UUID          `json:"userId"`
	Date      string              `json:"date"      binding:"required"`
	Rows      []BulkWorklogRowDTO `json:"rows"      binding:"required,min=1,max=50"`
}

type BulkCreateWorklogsResponseDTO struct {
	Worklogs []*worklogs_models.Worklog `json:"worklogs"`
}

type UpdateWorklogRequestDTO struct {
	Date        *string                       `json:"date"`
	HoursWorked *float64                      `json:"hoursWorked"`
	Description *string                       `json:"description"`
	TaskType    *string                       `json:"taskType"`
	Status      *worklogs_enums.WorklogStatus `json:"status"`
}

type ListWorklogsRequestDTO struct {
	UserID    string `form:"userId"    json:"userId"`
	StartDate string `form:"startDate" json:"startDate"`
	EndDate   string `form:"endDate"   json:"endDate"`
	Limit     int    `form:"limit"     json:"limit"`
	Offset    int    `form:"offset"    json:"offset"`
}

// WorklogFilter is the parsed form of ListWorklogsRequestDTO
type WorklogFilter struct {
	UserIDs   []uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

type WorklogResponseDTO struct {
	ID                      uuid.UUID                    `json:"id"                      gorm:"column:id"`
	ProjectID               uuid.UUID                    `json:"projectId"               gorm:"column:project_id"`
	ProjectName             string                       `json:"projectName"             gorm:"column:project_name"`
	UserID                  uuid.UUID                    `json:"userId"                  gorm:"column:user_id"`
	UserFullName            string                       `json:"userFullName"            gorm:"column:user_full_name"`
	ShadowResourceID        *uuid.UUID                   `json:"shadowResourceId"        gorm:"column:shadow_resource_id"`
	ShadowResourceFullName  *string                      `json:"shadowResourceFullName"  gorm:"column:shadow_resource_full_name"`
	IsShadowResourceWorklog bool                         `json:"isShadowResourceWorklog" gorm:"column:is_shadow_resource_worklog"`
	Date                    time.Time                    `json:"date"                    gorm:"column:date"`
	HoursWorked             float64                      `json:"hoursWorked"             gorm:"column:hours_worked"`
	Description             string                       `json:"description"             gorm:"column:description"`
	TaskType                string                       `json:"taskType"                gorm:"column:task_type"`
	Status                  worklogs_enums.WorklogStatus `json:"status"                  gorm:"column:status"`
	CreatedAt               time.Time                    `json:"createdAt"               gorm:"column:created_at"`
	UpdatedAt               *time.Time                   `json:"updatedAt"               gorm:"column:updated_at"`
}

type ListWorklogsResponseDTO struct {
	Worklogs   []WorklogResponseDTO `json:"worklogs"`
	Total      int64                `json:"total"`
	TotalHours float64              `json:"totalHours"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}
