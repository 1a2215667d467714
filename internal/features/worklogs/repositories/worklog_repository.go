package worklogs_repositories

import (
	"errors"
	"time"

	worklogs_dto "pmtrack/internal/features/worklogs/dto"
	worklogs_models "pmtrack/internal/features/worklogs/models"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// worklogs joined with their project and both users; soft-deleted projects
// and beneficiaries are filtered out by every listing
const selectWorklogs = `
	SELECT
		w.id,
		w.project_id,
		p.name AS project_name,
		w.user_id,
		u.full_name AS user_full_name,
		w.shadow_resource_id,
		s.full_name AS shadow_resource_full_name,
		w.is_shadow_resource_worklog,
		w.date,
		w.hours_worked,
		w.description,
		w.task_type,
		w.status,
		w.created_at,
		w.updated_at
	FROM worklogs w
	JOIN projects p ON p.id = w.project_id
	JOIN users u ON u.id = w.user_id
	LEFT JOIN users s ON s.id = w.shadow_resource_id`

type WorklogRepository struct {
	tx *gorm.DB
}

func (r *WorklogRepository) WithTx(tx *gorm.DB) *WorklogRepository {
	return &WorklogRepository{tx: tx}
}

func (r *WorklogRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}

func (r *WorklogRepository) CreateWorklog(worklog *worklogs_models.Worklog) error {
	if worklog.ID == uuid.Nil {
		worklog.ID = uuid.New()
	}
	if worklog.CreatedAt.IsZero() {
		worklog.CreatedAt = time.Now().UTC()
	}

	return r.db().Create(worklog).Error
}

// GetActiveWorklogByID locks the row when called inside a transaction
func (r *WorklogRepository) GetActiveWorklogByID(worklogID uuid.UUID) (*worklogs_models.Worklog, error) {
	query := r.db()
	if r.tx != nil {
		query = storage.ForUpdate(query)
	}

	var worklog worklogs_models.Worklog
	err := query.Where("id = ? AND is_deleted = ?", worklogID, false).First(&worklog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &worklog, nil
}

func (r *WorklogRepository) UpdateWorklog(worklog *worklogs_models.Worklog) error {
	return r.db().Save(worklog).Error
}

func (r *WorklogRepository) SoftDeleteWorklog(worklogID uuid.UUID) (int64, error) {
	result := r.db().
		Model(&worklogs_models.Worklog{}).
		Where("id = ? AND is_deleted = ?", worklogID, false).
		Update("is_deleted", true)

	return result.RowsAffected, result.Error
}

func (r *WorklogRepository) GetWorklogDTO(worklogID uuid.UUID) (*worklogs_dto.WorklogResponseDTO, error) {
	results := make([]worklogs_dto.WorklogResponseDTO, 0, 1)

	err := r.db().Raw(selectWorklogs+`
		WHERE w.id = ? AND w.is_deleted = ? AND p.is_deleted = ?`,
		worklogID, false, false,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}

	return &results[0], nil
}

func (r *WorklogRepository) ListProjectWorklogs(
	projectID uuid.UUID,
	filter *worklogs_dto.WorklogFilter,
) ([]worklogs_dto.WorklogResponseDTO, error) {
	where, args := projectWorklogsWhere(projectID, filter)

	sql := selectWorklogs + where + " ORDER BY w.date DESC, w.created_at DESC"
	if filter.Limit > 0 {
		sql += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	results := make([]worklogs_dto.WorklogResponseDTO, 0)
	err := r.db().Raw(sql, args...).Scan(&results).Error

	return results, err
}

// TotalsForProject counts matching rows and sums their hours across all pages
func (r *WorklogRepository) TotalsForProject(
	projectID uuid.UUID,
	filter *worklogs_dto.WorklogFilter,
) (int64, float64, error) {
	where, args := projectWorklogsWhere(projectID, filter)

	var totals struct {
		Total int64   `gorm:"column:total"`
		Hours float64 `gorm:"column:hours"`
	}

	err := r.db().Raw(`
		SELECT COUNT(*) AS total, COALESCE(SUM(w.hours_worked), 0) AS hours
		FROM worklogs w
		JOIN projects p ON p.id = w.project_id
		JOIN users u ON u.id = w.user_id`+where,
		args...,
	).Scan(&totals).Error

	return totals.Total, totals.Hours, err
}

// ListUserWorklogs returns entries the user is accountable for or wrote as
// a delegate, newest first
func (r *WorklogRepository) ListUserWorklogs(userID uuid.UUID) ([]worklogs_dto.WorklogResponseDTO, error) {
	results := make([]worklogs_dto.WorklogResponseDTO, 0)

	err := r.db().Raw(selectWorklogs+`
		WHERE (w.user_id = ? OR w.shadow_resource_id = ?)
			AND w.is_deleted = ? AND p.is_deleted = ?
		ORDER BY w.date DESC, w.created_at DESC`,
		userID, userID, false, false,
	).Scan(&results).Error

	return results, err
}

// GetActiveWorklogsInRange returns live entries of a project between two
// days inclusive, ordered by date then creation time
func (r *WorklogRepository) GetActiveWorklogsInRange(
	projectID uuid.UUID,
	start, end time.Time,
) ([]*worklogs_models.Worklog, error) {
	var worklogs []*worklogs_models.Worklog

	err := r.db().
		Where("project_id = ? AND is_deleted = ? AND date >= ? AND date <= ?", projectID, false, start, end).
		Order("date ASC, created_at ASC").
		Find(&worklogs).Error

	return worklogs, err
}

func (r *WorklogRepository) CountActiveWorklogs() (int64, error) {
	var count int64

	err := r.db().Raw(`
		SELECT COUNT(*) FROM worklogs w
		JOIN projects p ON p.id = w.project_id
		WHERE w.is_deleted = ? AND p.is_deleted = ?`,
		false, false,
	).Scan(&count).Error

	return count, err
}

// CountUserWorklogs counts entries owned by the user or written by them as delegate
func (r *WorklogRepository) CountUserWorklogs(userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db().Raw(`
		SELECT COUNT(*) FROM worklogs w
		JOIN projects p ON p.id = w.project_id
		WHERE (w.user_id = ? OR w.shadow_resource_id = ?)
			AND w.is_deleted = ? AND p.is_deleted = ?`,
		userID, userID, false, false,
	).Scan(&count).Error

	return count, err
}

// SumUserHours adds hours the user logged for themselves and as a delegate
func (r *WorklogRepository) SumUserHours(userID uuid.UUID, start, end time.Time) (float64, error) {
	var hours float64

	err := r.db().Raw(`
		SELECT COALESCE(SUM(w.hours_worked), 0) FROM worklogs w
		JOIN projects p ON p.id = w.project_id
		WHERE ((w.user_id = ? AND w.is_shadow_resource_worklog = ?) OR w.shadow_resource_id = ?)
			AND w.date >= ? AND w.date <= ?
			AND w.is_deleted = ? AND p.is_deleted = ?`,
		userID, false, userID, start, end, false, false,
	).Scan(&hours).Error

	return hours, err
}

func (r *WorklogRepository) ListRecentWorklogs(limit int) ([]worklogs_dto.WorklogResponseDTO, error) {
	results := make([]worklogs_dto.WorklogResponseDTO, 0)

	err := r.db().Raw(selectWorklogs+`
		WHERE w.is_deleted = ? AND p.is_deleted = ?
		ORDER BY w.created_at DESC
		LIMIT ?`,
		false, false, limit,
	).Scan(&results).Error

	return results, err
}

func projectWorklogsWhere(projectID uuid.UUID, filter *worklogs_dto.WorklogFilter) (string, []any) {
	where := `
		WHERE w.project_id = ? AND w.is_deleted = ? AND p.is_deleted = ? AND u.is_deleted = ?`
	args := []any{projectID, false, false, false}

	if len(filter.UserIDs) > 0 {
		where += " AND w.user_id IN ?"
		args = append(args, filter.UserIDs)
	}

	if filter.StartDate != nil {
		where += " AND w.date >= ?"
		args = append(args, *filter.StartDate)
	}

	if filter.EndDate != nil {
		where += " AND w.date <= ?"
		args = append(args, *filter.EndDate)
	}

	return where, args
}
