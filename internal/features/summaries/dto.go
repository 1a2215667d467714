package summaries

import (
	"time"

	"github.com/google/uuid"
)

type GenerateSummariesRequest struct {
	Year          int  `json:"year"          binding:"required"`
	Month         int  `json:"month"         binding:"required"`
	IncludeShadow bool `json:"includeShadow"`
}

type MonthlySummaryDTO struct {
	ID                 uuid.UUID `json:"id"                 gorm:"column:id"`
	ProjectID          uuid.UUID `json:"projectId"          gorm:"column:project_id"`
	UserID             uuid.UUID `json:"userId"             gorm:"column:user_id"`
	UserFullName       string    `json:"userFullName"       gorm:"column:user_full_name"`
	UserEmail          string    `json:"userEmail"          gorm:"column:user_email"`
	Year               int       `json:"year"               gorm:"column:year"`
	Month              int       `json:"month"              gorm:"column:month"`
	TotalHours         float64   `json:"totalHours"         gorm:"column:total_hours"`
	SummaryText        string    `json:"summaryText"        gorm:"column:summary_text"`
	GeneratedAt        time.Time `json:"generatedAt"        gorm:"column:generated_at"`
	IncludesShadowWork bool      `json:"includesShadowWork" gorm:"column:includes_shadow_work"`
}

type GenerateSummariesResponse struct {
	Summaries []*MonthlySummary `json:"summaries"`
}

type ListSummariesResponse struct {
	Summaries []*MonthlySummaryDTO `json:"summaries"`
}
