package projects_repositories

import (
	"errors"
	"time"

	projects_models "pmtrack/internal/features/projects/models"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DelegationRepository struct {
	tx *gorm.DB
}

func (r *DelegationRepository) WithTx(tx *gorm.DB) *DelegationRepository {
	return &DelegationRepository{tx: tx}
}

func (r *DelegationRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}

func (r *DelegationRepository) CreateDelegation(delegation *projects_models.ShadowDelegation) error {
	if delegation.ID == uuid.Nil {
		delegation.ID = uuid.New()
	}

	if delegation.AssignedDate.IsZero() {
		delegation.AssignedDate = time.Now().UTC()
	}

	return r.db().Create(delegation).Error
}

func (r *DelegationRepository) GetActiveDelegationByID(
	delegationID uuid.UUID,
) (*projects_models.ShadowDelegation, error) {
	return r.first(r.db().Where("id = ? AND is_deleted = ?", delegationID, false))
}

// GetActiveDelegationOf returns the delegation the user currently serves on
// the project. Inside a transaction the row is locked on Postgres, so a
// concurrent removal waits for the writer.
func (r *DelegationRepository) GetActiveDelegationOf(
	projectID, delegateID uuid.UUID,
) (*projects_models.ShadowDelegation, error) {
	query := r.db()
	if r.tx != nil {
		query = storage.ForUpdate(query)
	}

	return r.first(query.Where(
		"project_id = ? AND shadow_resource_id = ? AND is_deleted = ?",
		projectID, delegateID, false,
	))
}

func (r *DelegationRepository) GetActiveDelegationsFor(
	projectID, beneficiaryID uuid.UUID,
) ([]*projects_models.ShadowDelegation, error) {
	var delegations []*projects_models.ShadowDelegation

	err := r.db().
		Where("project_id = ? AND project_on_board_user_id = ? AND is_deleted = ?", projectID, beneficiaryID, false).
		Order("assigned_date ASC, id ASC").
		Find(&delegations).Error

	return delegations, err
}

func (r *DelegationRepository) GetActiveDelegations(
	projectID uuid.UUID,
) ([]*projects_models.ShadowDelegation, error) {
	var delegations []*projects_models.ShadowDelegation

	err := r.db().
		Where("project_id = ? AND is_deleted = ?", projectID, false).
		Order("assigned_date ASC, id ASC").
		Find(&delegations).Error

	return delegations, err
}

func (r *DelegationRepository) first(query *gorm.DB) (*projects_models.ShadowDelegation, error) {
	var delegation projects_models.ShadowDelegation

	if err := query.First(&delegation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &delegation, nil
}
