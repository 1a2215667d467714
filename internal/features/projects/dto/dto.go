package projects_dto

import (
	"time"

	projects_enums "pmtrack/internal/features/projects/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name        string                       `json:"name"        binding:"required,min=1,max=255"`
	Description string                       `json:"description" binding:"max=2000"`
	StartDate   string                       `json:"startDate"   binding:"required"`
	EndDate     *string                      `json:"endDate"`
	Status      projects_enums.ProjectStatus `json:"status"`
}

type UpdateProjectRequestDTO struct {
	Name        *string                       `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string                       `json:"description" binding:"omitempty,max=2000"`
	StartDate   *string                       `json:"startDate"`
	EndDate     *string                       `json:"endDate"`
	Status      *projects_enums.ProjectStatus `json:"status"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id"`
	Name        string                       `json:"name"        gorm:"column:name"`
	Description string                       `json:"description" gorm:"column:description"`
	StartDate   time.Time                    `json:"startDate"   gorm:"column:start_date"`
	EndDate     *time.Time                   `json:"endDate"     gorm:"column:end_date"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`

	// How the current user relates to the project, empty for admins
	Relation ProjectRelation `json:"relation,omitempty" gorm:"column:relation"`
}

type ProjectRelation string

const (
	ProjectRelationMember   ProjectRelation = "MEMBER"
	ProjectRelationDelegate ProjectRelation = "DELEGATE"
)

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Assignment DTOs
type CreateAssignmentRequestDTO struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Role   string    `json:"role"   binding:"max=100"`
}

// Delegation DTOs
type CreateDelegationRequestDTO struct {
	ShadowResourceID uuid.UUID `json:"shadowResourceId" binding:"required"`
	// only admins may delegate on behalf of someone else
	BeneficiaryID *uuid.UUID `json:"beneficiaryId"`
	Role          string     `json:"role"          binding:"max=100"`
}

// Team DTOs
type TeamMemberDTO struct {
	UserID        uuid.UUID  `json:"userId"`
	Email         string     `json:"email"`
	FullName      string     `json:"fullName"`
	Role          string     `json:"role"`
	IsShadow      bool       `json:"isShadow"`
	AddedByUserID *uuid.UUID `json:"addedByUserId,omitempty"`
	AssignmentID  *uuid.UUID `json:"assignmentId,omitempty"`
	DelegationID  *uuid.UUID `json:"delegationId,omitempty"`
	AssignedDate  time.Time  `json:"assignedDate"`
}

type GetTeamResponseDTO struct {
	Members []TeamMemberDTO `json:"members"`
}
