package summaries

import (
	"time"

	"pmtrack/internal/storage"

	"github.com/google/uuid"
)

// MonthlySummary is derived data. Regenerating a period replaces every row
// of that project and month.
type MonthlySummary struct {
	ID                 uuid.UUID `json:"id"                 gorm:"column:id;primaryKey"`
	ProjectID          uuid.UUID `json:"projectId"          gorm:"column:project_id;index"`
	UserID             uuid.UUID `json:"userId"             gorm:"column:user_id"`
	Year               int       `json:"year"               gorm:"column:year"`
	Month              int       `json:"month"              gorm:"column:month"`
	TotalHours         float64   `json:"totalHours"         gorm:"column:total_hours"`
	SummaryText        string    `json:"summaryText"        gorm:"column:summary_text"`
	GeneratedAt        time.Time `json:"generatedAt"        gorm:"column:generated_at"`
	IncludesShadowWork bool      `json:"includesShadowWork" gorm:"column:includes_shadow_work"`
}

func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}

func init() {
	storage.RegisterModels(&MonthlySummary{})
}
