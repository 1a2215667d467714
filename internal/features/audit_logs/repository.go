package audit_logs

import (
	"strings"

	"pmtrack/internal/storage"

	"github.com/google/uuid"
)

const selectAuditLogs = `
	SELECT
		al.id,
		al.user_id,
		al.project_id,
		al.message,
		al.created_at,
		u.email AS user_email,
		u.full_name AS user_full_name,
		p.name AS project_name
	FROM audit_logs al
	LEFT JOIN users u ON al.user_id = u.id
	LEFT JOIN projects p ON al.project_id = p.id`

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) List(filter auditLogFilter, limit, offset int) ([]*AuditLogDTO, error) {
	auditLogs := make([]*AuditLogDTO, 0)

	where, args := filter.where()
	args = append(args, limit, offset)

	err := storage.GetDb().
		Raw(selectAuditLogs+where+" ORDER BY al.created_at DESC LIMIT ? OFFSET ?", args...).
		Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) Count(filter auditLogFilter) (int64, error) {
	var count int64

	where, args := filter.where()
	err := storage.GetDb().Raw("SELECT COUNT(*) FROM audit_logs al"+where, args...).Scan(&count).Error

	return count, err
}

func (f auditLogFilter) where() (string, []any) {
	conditions := []string{"1 = 1"}
	args := []any{}

	if f.UserID != nil {
		conditions = append(conditions, "al.user_id = ?")
		args = append(args, *f.UserID)
	}

	if f.ProjectID != nil {
		conditions = append(conditions, "al.project_id = ?")
		args = append(args, *f.ProjectID)
	}

	if f.BeforeDate != nil {
		conditions = append(conditions, "al.created_at < ?")
		args = append(args, *f.BeforeDate)
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		conditions = append(conditions, "LOWER(al.message) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
