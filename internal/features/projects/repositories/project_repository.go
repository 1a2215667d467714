package projects_repositories

import (
	"errors"
	"time"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_models "pmtrack/internal/features/projects/models"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	tx *gorm.DB
}

func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{tx: tx}
}

func (r *ProjectRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return r.db().Create(project).Error
}

// GetActiveProjectByID returns nil without error for missing or soft-deleted projects
func (r *ProjectRepository) GetActiveProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := r.db().Where("id = ? AND is_deleted = ?", projectID, false).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return r.db().Save(project).Error
}

func (r *ProjectRepository) GetAllProjects() ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := r.db().Where("is_deleted = ?", false).Order("created_at DESC").Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetAllProjectDTOs() ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := r.db().
		Table("projects").
		Select("id, name, description, start_date, end_date, status, created_at").
		Where("is_deleted = ?", false).
		Order("name ASC").
		Scan(&results).Error

	return results, err
}

// GetProjectsForUser lists projects where the user is an active member or
// an active delegate. Membership wins when both rows exist.
func (r *ProjectRepository) GetProjectsForUser(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := r.db().Raw(`
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.status, p.created_at,
			CASE WHEN EXISTS (
				SELECT 1 FROM project_assignments pa
				WHERE pa.project_id = p.id AND pa.user_id = ? AND pa.is_deleted = ?
			) THEN ? ELSE ? END AS relation
		FROM projects p
		WHERE p.is_deleted = ?
			AND (
				EXISTS (
					SELECT 1 FROM project_assignments pa
					WHERE pa.project_id = p.id AND pa.user_id = ? AND pa.is_deleted = ?
				)
				OR EXISTS (
					SELECT 1 FROM shadow_delegations sd
					WHERE sd.project_id = p.id AND sd.shadow_resource_id = ? AND sd.is_deleted = ?
				)
			)
		ORDER BY p.name ASC`,
		userID, false,
		projects_dto.ProjectRelationMember, projects_dto.ProjectRelationDelegate,
		false,
		userID, false,
		userID, false,
	).Scan(&results).Error

	return results, err
}
