package audit_logs

import (
	"fmt"
	"log/slog"
	"time"

	users_models "pmtrack/internal/features/users/models"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog never fails the caller, errors are only logged
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
) {
	auditLog := &AuditLog{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "message", message)
	}
}

func (s *AuditLogService) GetGlobalAuditLogs(
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if !user.IsAdmin() {
		return nil, errors_utils.NewForbiddenError("only administrators can view global audit logs")
	}

	return s.getPage(auditLogFilter{}, request)
}

// GetUserAuditLogs lets users read their own trail, admins read anyone's
func (s *AuditLogService) GetUserAuditLogs(
	targetUserID uuid.UUID,
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if !user.IsAdmin() && user.ID != targetUserID {
		return nil, errors_utils.NewForbiddenError("insufficient permissions to view user audit logs")
	}

	return s.getPage(auditLogFilter{UserID: &targetUserID}, request)
}

// GetProjectAuditLogs does no permission check, the project service does it
func (s *AuditLogService) GetProjectAuditLogs(
	projectID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	return s.getPage(auditLogFilter{ProjectID: &projectID}, request)
}

func (s *AuditLogService) getPage(filter auditLogFilter, request *GetAuditLogsRequest) (*GetAuditLogsResponse, error) {
	limit, offset := normalizePage(request)
	filter.BeforeDate = request.BeforeDate
	filter.Search = request.Search

	auditLogs, err := s.auditLogRepository.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	total, err := s.auditLogRepository.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func normalizePage(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return limit, max(request.Offset, 0)
}
