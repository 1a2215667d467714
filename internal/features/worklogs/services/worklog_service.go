package worklogs_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pmtrack/internal/features/access"
	"pmtrack/internal/features/audit_logs"
	projects_services "pmtrack/internal/features/projects/services"
	users_models "pmtrack/internal/features/users/models"
	users_services "pmtrack/internal/features/users/services"
	worklogs_dto "pmtrack/internal/features/worklogs/dto"
	worklogs_models "pmtrack/internal/features/worklogs/models"
	worklogs_repositories "pmtrack/internal/features/worklogs/repositories"
	"pmtrack/internal/storage"
	errors_utils "pmtrack/internal/util/errors"
	time_utils "pmtrack/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type WorklogService struct {
	worklogRepository  *worklogs_repositories.WorklogRepository
	projectService     *projects_services.ProjectService
	userService        *users_services.UserService
	delegationResolver *projects_services.DelegationResolver
	auditLogService    *audit_logs.AuditLogService
	logger             *slog.Logger
}

func (s *WorklogService) CreateWorklog(
	request *worklogs_dto.CreateWorklogRequestDTO,
	caller *users_models.User,
) (*worklogs_models.Worklog, error) {
	row := worklogs_dto.BulkWorklogRowDTO{
		HoursWorked: request.HoursWorked,
		Description: request.Description,
		TaskType:    request.TaskType,
		Status:      request.Status,
	}

	worklogs, err := s.createWorklogs(request.ProjectID, request.UserID, request.Date, []worklogs_dto.BulkWorklogRowDTO{row}, caller)
	if err != nil {
		return nil, err
	}

	return worklogs[0], nil
}

// BulkCreateWorklogs writes every row or none. Rows are checked in list
// order and the first failing row aborts the batch.
func (s *WorklogService) BulkCreateWorklogs(
	request *worklogs_dto.BulkCreateWorklogsRequestDTO,
	caller *users_models.User,
) ([]*worklogs_models.Worklog, error) {
	if len(request.Rows) == 0 {
		return nil, errors_utils.NewValidationError("EMPTY_BATCH", "at least one row is required", "rows")
	}

	return s.createWorklogs(request.ProjectID, request.UserID, request.Date, request.Rows, caller)
}

func (s *WorklogService) createWorklogs(
	projectID uuid.UUID,
	beneficiaryID *uuid.UUID,
	dateValue string,
	rows []worklogs_dto.BulkWorklogRowDTO,
	caller *users_models.User,
) ([]*worklogs_models.Worklog, error) {
	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(dateValue, project, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	beneficiary := caller
	if beneficiaryID != nil && *beneficiaryID != caller.ID {
		beneficiary, err = s.userService.GetActiveUser(*beneficiaryID)
		if err != nil {
			return nil, err
		}
	}

	attribution := worklogs_models.AttributionFor(beneficiary.ID, caller.ID)
	created := make([]*worklogs_models.Worklog, 0, len(rows))

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		resolver := s.delegationResolver.WithTx(tx)
		repository := s.worklogRepository.WithTx(tx)

		for index, row := range rows {
			worklog, err := s.buildWorklog(resolver, projectID, attribution, date, row, caller)
			if err == nil {
				err = repository.CreateWorklog(worklog)
			}
			if err != nil {
				if len(rows) > 1 {
					return rowError(index, err)
				}
				return err
			}

			created = append(created, worklog)
		}

		return nil
	})
	if err != nil {
		if errors_utils.IsValidation(err) || errors_utils.IsForbidden(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create worklogs: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Logged %d worklog(s) for %s on %s", len(created), beneficiary.Email, date.Format(time_utils.DateLayout)),
		&caller.ID,
		&projectID,
	)

	return created, nil
}

// buildWorklog validates one row and authorizes it against relationship
// facts read inside the write transaction
func (s *WorklogService) buildWorklog(
	resolver *projects_services.DelegationResolver,
	projectID uuid.UUID,
	attribution worklogs_models.Attribution,
	date time.Time,
	row worklogs_dto.BulkWorklogRowDTO,
	caller *users_models.User,
) (*worklogs_models.Worklog, error) {
	fields, err := validateFields(row.HoursWorked, row.Description, row.TaskType, row.Status)
	if err != nil {
		return nil, err
	}

	relationship, err := resolver.Relate(projectID, caller.ID)
	if err != nil {
		return nil, err
	}

	if attribution.IsDelegated() && !relationship.ActsFor(attribution.BeneficiaryID()) {
		return nil, errors_utils.NewValidationError(
			"NO_ACTIVE_DELEGATION",
			"caller has no active delegation for this user on the project",
			"userId",
		)
	}

	worklog := &worklogs_models.Worklog{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Date:        date,
		HoursWorked: fields.hours,
		Description: fields.description,
		TaskType:    fields.taskType,
		Status:      fields.status,
		CreatedAt:   time.Now().UTC(),
	}
	worklog.SetAttribution(attribution)

	decision := access.Authorize(access.OperationCreate, worklog.Subject(), caller.Caller(), relationship)
	if !decision.Allowed {
		return nil, errors_utils.NewForbiddenError(decision.Reason)
	}

	return worklog, nil
}

// UpdateWorklog authorizes against the caller's current relationship with
// the beneficiary. How the entry was originally written does not matter.
func (s *WorklogService) UpdateWorklog(
	worklogID uuid.UUID,
	request *worklogs_dto.UpdateWorklogRequestDTO,
	caller *users_models.User,
) (*worklogs_models.Worklog, error) {
	var worklog *worklogs_models.Worklog

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		repository := s.worklogRepository.WithTx(tx)

		var err error
		worklog, err = s.getAuthorized(tx, worklogID, access.OperationUpdate, caller)
		if err != nil {
			return err
		}

		if err := s.applyUpdate(worklog, request); err != nil {
			return err
		}

		now := time.Now().UTC()
		worklog.UpdatedAt = &now

		return repository.UpdateWorklog(worklog)
	})
	if err != nil {
		if errors_utils.IsNotFound(err) || errors_utils.IsForbidden(err) || errors_utils.IsValidation(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update worklog: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Worklog %s updated", worklog.ID),
		&caller.ID,
		&worklog.ProjectID,
	)

	return worklog, nil
}

func (s *WorklogService) DeleteWorklog(worklogID uuid.UUID, caller *users_models.User) error {
	var worklog *worklogs_models.Worklog

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var err error
		worklog, err = s.getAuthorized(tx, worklogID, access.OperationDelete, caller)
		if err != nil {
			return err
		}

		_, err = s.worklogRepository.WithTx(tx).SoftDeleteWorklog(worklog.ID)
		return err
	})
	if err != nil {
		if errors_utils.IsNotFound(err) || errors_utils.IsForbidden(err) {
			return err
		}

		return fmt.Errorf("failed to delete worklog: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Worklog %s deleted", worklog.ID),
		&caller.ID,
		&worklog.ProjectID,
	)

	return nil
}

func (s *WorklogService) GetWorklog(
	worklogID uuid.UUID,
	caller *users_models.User,
) (*worklogs_dto.WorklogResponseDTO, error) {
	if _, err := s.getAuthorized(nil, worklogID, access.OperationRead, caller); err != nil {
		return nil, err
	}

	worklog, err := s.worklogRepository.GetWorklogDTO(worklogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worklog: %w", err)
	}

	if worklog == nil {
		return nil, errors_utils.NewNotFoundError("worklog")
	}

	return worklog, nil
}

// ListProjectWorklogs shows members the whole project. A delegate who is
// not a member only sees the worklogs of the beneficiary they act for.
func (s *WorklogService) ListProjectWorklogs(
	projectID uuid.UUID,
	request *worklogs_dto.ListWorklogsRequestDTO,
	caller *users_models.User,
) (*worklogs_dto.ListWorklogsResponseDTO, error) {
	if _, err := s.projectService.GetProjectWithCache(projectID); err != nil {
		return nil, err
	}

	filter, err := toFilter(request)
	if err != nil {
		return nil, err
	}

	relationship := access.Relationship{}
	if !caller.IsAdmin() {
		relationship, err = s.delegationResolver.Relate(projectID, caller.ID)
		if err != nil {
			return nil, err
		}

		if !relationship.CallerIsMember && !relationship.IsDelegate() {
			return nil, errors_utils.NewForbiddenError("insufficient permissions to view project worklogs")
		}

		if !relationship.CallerIsMember {
			beneficiaryID := *relationship.CallerActsFor
			if len(filter.UserIDs) > 0 && filter.UserIDs[0] != beneficiaryID {
				return emptyList(filter), nil
			}
			filter.UserIDs = []uuid.UUID{beneficiaryID}
		}
	}

	worklogs, err := s.worklogRepository.ListProjectWorklogs(projectID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list worklogs: %w", err)
	}

	total, totalHours, err := s.worklogRepository.TotalsForProject(projectID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count worklogs: %w", err)
	}

	visible := make([]worklogs_dto.WorklogResponseDTO, 0, len(worklogs))
	for _, worklog := range worklogs {
		if access.Authorize(access.OperationRead, subjectOf(&worklog), caller.Caller(), relationship).Allowed {
			visible = append(visible, worklog)
		}
	}

	return &worklogs_dto.ListWorklogsResponseDTO{
		Worklogs:   visible,
		Total:      total,
		TotalHours: time_utils.RoundHours(totalHours),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// ListMyWorklogs lists the caller's own entries and the ones they wrote
// as a delegate, as long as they still act for that beneficiary
func (s *WorklogService) ListMyWorklogs(caller *users_models.User) (*worklogs_dto.ListWorklogsResponseDTO, error) {
	worklogs, err := s.worklogRepository.ListUserWorklogs(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worklogs: %w", err)
	}

	relationships := make(map[uuid.UUID]access.Relationship)
	visible := make([]worklogs_dto.WorklogResponseDTO, 0, len(worklogs))
	totalHours := 0.0

	for _, worklog := range worklogs {
		relationship, ok := relationships[worklog.ProjectID]
		if !ok && !caller.IsAdmin() {
			relationship, err = s.delegationResolver.Relate(worklog.ProjectID, caller.ID)
			if err != nil {
				return nil, err
			}
			relationships[worklog.ProjectID] = relationship
		}

		if !access.Authorize(access.OperationRead, subjectOf(&worklog), caller.Caller(), relationship).Allowed {
			continue
		}

		visible = append(visible, worklog)
		totalHours += worklog.HoursWorked
	}

	return &worklogs_dto.ListWorklogsResponseDTO{
		Worklogs:   visible,
		Total:      int64(len(visible)),
		TotalHours: time_utils.RoundHours(totalHours),
		Limit:      len(visible),
	}, nil
}

// GetWorklogsForPeriod returns live project entries between two days
// inclusive, ordered by date then creation time
func (s *WorklogService) GetWorklogsForPeriod(
	tx *gorm.DB,
	projectID uuid.UUID,
	start, end time.Time,
) ([]*worklogs_models.Worklog, error) {
	repository := s.worklogRepository
	if tx != nil {
		repository = repository.WithTx(tx)
	}

	return repository.GetActiveWorklogsInRange(projectID, start, end)
}

func (s *WorklogService) CountAllWorklogs() (int64, error) {
	return s.worklogRepository.CountActiveWorklogs()
}

func (s *WorklogService) CountUserWorklogs(userID uuid.UUID) (int64, error) {
	return s.worklogRepository.CountUserWorklogs(userID)
}

func (s *WorklogService) SumUserHours(userID uuid.UUID, start, end time.Time) (float64, error) {
	hours, err := s.worklogRepository.SumUserHours(userID, start, end)
	return time_utils.RoundHours(hours), err
}

func (s *WorklogService) GetRecentWorklogs(limit int) ([]worklogs_dto.WorklogResponseDTO, error) {
	return s.worklogRepository.ListRecentWorklogs(limit)
}

// getAuthorized loads a live worklog and runs the access check with
// relationship facts read through tx when one is given
func (s *WorklogService) getAuthorized(
	tx *gorm.DB,
	worklogID uuid.UUID,
	operation access.Operation,
	caller *users_models.User,
) (*worklogs_models.Worklog, error) {
	repository := s.worklogRepository
	resolver := s.delegationResolver
	if tx != nil {
		repository = repository.WithTx(tx)
		resolver = resolver.WithTx(tx)
	}

	worklog, err := repository.GetActiveWorklogByID(worklogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worklog: %w", err)
	}

	if worklog == nil {
		return nil, errors_utils.NewNotFoundError("worklog")
	}

	relationship := access.Relationship{}
	if !caller.IsAdmin() {
		relationship, err = resolver.Relate(worklog.ProjectID, caller.ID)
		if err != nil {
			return nil, err
		}
	}

	decision := access.Authorize(operation, worklog.Subject(), caller.Caller(), relationship)
	if !decision.Allowed {
		return nil, errors_utils.NewForbiddenError(decision.Reason)
	}

	return worklog, nil
}

func (s *WorklogService) applyUpdate(
	worklog *worklogs_models.Worklog,
	request *worklogs_dto.UpdateWorklogRequestDTO,
) error {
	hours := worklog.HoursWorked
	if request.HoursWorked != nil {
		hours = *request.HoursWorked
	}

	description := worklog.Description
	if request.Description != nil {
		description = *request.Description
	}

	taskType := worklog.TaskType
	if request.TaskType != nil {
		taskType = *request.TaskType
	}

	status := worklog.Status
	if request.Status != nil {
		status = *request.Status
	}

	fields, err := validateFields(hours, description, taskType, status)
	if err != nil {
		return err
	}

	if request.Date != nil {
		project, err := s.projectService.GetProjectWithCache(worklog.ProjectID)
		if err != nil {
			return err
		}

		date, err := validateDate(*request.Date, project, time.Now().UTC())
		if err != nil {
			return err
		}
		worklog.Date = date
	}

	worklog.HoursWorked = fields.hours
	worklog.Description = fields.description
	worklog.TaskType = fields.taskType
	worklog.Status = fields.status

	return nil
}

func toFilter(request *worklogs_dto.ListWorklogsRequestDTO) (*worklogs_dto.WorklogFilter, error) {
	filter := &worklogs_dto.WorklogFilter{
		Limit:  request.Limit,
		Offset: max(request.Offset, 0),
	}

	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = defaultListLimit
	}

	if request.UserID != "" {
		userID, err := uuid.Parse(request.UserID)
		if err != nil {
			return nil, errors_utils.NewValidationError("INVALID_USER_ID", "invalid user id", "userId")
		}
		filter.UserIDs = []uuid.UUID{userID}
	}

	if request.StartDate != "" {
		startDate, err := time_utils.ParseDate(request.StartDate)
		if err != nil {
			return nil, errors_utils.NewValidationError("INVALID_DATE", err.Error(), "startDate")
		}
		filter.StartDate = &startDate
	}

	if request.EndDate != "" {
		endDate, err := time_utils.ParseDate(request.EndDate)
		if err != nil {
			return nil, errors_utils.NewValidationError("INVALID_DATE", err.Error(), "endDate")
		}
		filter.EndDate = &endDate
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, errors_utils.NewValidationError("INVALID_DATE_RANGE", "end date is before start date", "endDate")
	}

	return filter, nil
}

func subjectOf(worklog *worklogs_dto.WorklogResponseDTO) access.Subject {
	return access.Subject{
		Kind:          access.SubjectWorklog,
		ProjectID:     worklog.ProjectID,
		BeneficiaryID: worklog.UserID,
		DelegateID:    worklog.ShadowResourceID,
	}
}

func emptyList(filter *worklogs_dto.WorklogFilter) *worklogs_dto.ListWorklogsResponseDTO {
	return &worklogs_dto.ListWorklogsResponseDTO{
		Worklogs: []worklogs_dto.WorklogResponseDTO{},
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
}

func rowError(index int, err error) error {
	prefix := fmt.Sprintf("row %d: ", index+1)

	var validationErr *errors_utils.ValidationError
	if errors.As(err, &validationErr) {
		return errors_utils.NewValidationError(validationErr.Code, prefix+validationErr.Error(), "")
	}

	var forbiddenErr *errors_utils.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return errors_utils.NewForbiddenError(prefix + forbiddenErr.Message)
	}

	return fmt.Errorf("%s%w", prefix, err)
}
