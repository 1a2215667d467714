package summaries

import (
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SummaryRepository struct{}

// ReplacePeriod swaps the stored set of a period for a new one inside tx
func (r *SummaryRepository) ReplacePeriod(
	tx *gorm.DB,
	projectID uuid.UUID,
	year, month int,
	summaries []*MonthlySummary,
) error {
	err := tx.
		Where("project_id = ? AND year = ? AND month = ?", projectID, year, month).
		Delete(&MonthlySummary{}).Error
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		return nil
	}

	return tx.Create(summaries).Error
}

func (r *SummaryRepository) GetForPeriod(projectID uuid.UUID, year, month int) ([]*MonthlySummary, error) {
	var summaries []*MonthlySummary

	err := storage.GetDb().
		Where("project_id = ? AND year = ? AND month = ?", projectID, year, month).
		Order("user_id ASC").
		Find(&summaries).Error

	return summaries, err
}

func (r *SummaryRepository) ListByProject(projectID uuid.UUID) ([]*MonthlySummaryDTO, error) {
	summaries := make([]*MonthlySummaryDTO, 0)

	err := storage.GetDb().Raw(`
		SELECT
			ms.id,
			ms.project_id,
			ms.user_id,
			u.full_name AS user_full_name,
			u.email AS user_email,
			ms.year,
			ms.month,
			ms.total_hours,
			ms.summary_text,
			ms.generated_at,
			ms.includes_shadow_work
		FROM monthly_summaries ms
		LEFT JOIN users u ON u.id = ms.user_id
		WHERE ms.project_id = ?
		ORDER BY ms.year DESC, ms.month DESC, u.full_name ASC`,
		projectID,
	).Scan(&summaries).Error

	return summaries, err
}
