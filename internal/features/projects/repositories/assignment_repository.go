package projects_repositories

import (
	"errors"
	"time"

	projects_models "pmtrack/internal/features/projects/models"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	tx *gorm.DB
}

func (r *AssignmentRepository) WithTx(tx *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{tx: tx}
}

func (r *AssignmentRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}

func (r *AssignmentRepository) CreateAssignment(assignment *projects_models.ProjectAssignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}

	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = time.Now().UTC()
	}

	return r.db().Create(assignment).Error
}

func (r *AssignmentRepository) GetActiveAssignmentByID(
	assignmentID uuid.UUID,
) (*projects_models.ProjectAssignment, error) {
	return r.first(r.db().Where("id = ? AND is_deleted = ?", assignmentID, false))
}

// GetActiveAssignment locks the row on Postgres when called inside a transaction
func (r *AssignmentRepository) GetActiveAssignment(
	projectID, userID uuid.UUID,
) (*projects_models.ProjectAssignment, error) {
	query := r.db()
	if r.tx != nil {
		query = storage.ForUpdate(query)
	}

	return r.first(query.Where(
		"project_id = ? AND user_id = ? AND is_deleted = ?",
		projectID, userID, false,
	))
}

func (r *AssignmentRepository) GetActiveAssignments(
	projectID uuid.UUID,
) ([]*projects_models.ProjectAssignment, error) {
	var assignments []*projects_models.ProjectAssignment

	err := r.db().
		Where("project_id = ? AND is_deleted = ?", projectID, false).
		Order("assigned_date ASC, id ASC").
		Find(&assignments).Error

	return assignments, err
}

func (r *AssignmentRepository) first(query *gorm.DB) (*projects_models.ProjectAssignment, error) {
	var assignment projects_models.ProjectAssignment

	if err := query.First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &assignment, nil
}
