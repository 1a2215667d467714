package cascade

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Entity string

const (
	EntityProject    Entity = "project"
	EntityUser       Entity = "user"
	EntityAssignment Entity = "assignment"
	EntityDelegation Entity = "delegation"
)

// Key names used to bind dependent filters to concrete ids
const (
	KeyID        = "id"
	KeyProjectID = "project_id"
	KeyUserID    = "user_id"
)

type Keys map[string]uuid.UUID

// Dependent is a table whose active rows are soft-deleted together with
// the root. Match maps a column of the dependent table to a key name.
type Dependent struct {
	Table string
	Match map[string]string
}

type Policy struct {
	RootTable  string
	Dependents []Dependent
}

// Worklogs survive user and assignment removal so history stays intact;
// only deleting the project retires them.
var policies = map[Entity]Policy{
	EntityProject: {
		RootTable: "projects",
		Dependents: []Dependent{
			{Table: "project_assignments", Match: map[string]string{"project_id": KeyID}},
			{Table: "shadow_delegations", Match: map[string]string{"project_id": KeyID}},
			{Table: "worklogs", Match: map[string]string{"project_id": KeyID}},
		},
	},
	EntityUser: {
		RootTable: "users",
		Dependents: []Dependent{
			{Table: "project_assignments", Match: map[string]string{"user_id": KeyID}},
			{Table: "shadow_delegations", Match: map[string]string{"shadow_resource_id": KeyID}},
			{Table: "shadow_delegations", Match: map[string]string{"project_on_board_user_id": KeyID}},
		},
	},
	EntityAssignment: {
		RootTable: "project_assignments",
		Dependents: []Dependent{
			{
				Table: "shadow_delegations",
				Match: map[string]string{
					"project_id":               KeyProjectID,
					"project_on_board_user_id": KeyUserID,
				},
			},
		},
	},
	EntityDelegation: {
		RootTable: "shadow_delegations",
	},
}

type Result struct {
	Root     int64
	Affected map[string]int64
}

func PolicyFor(entity Entity) (Policy, bool) {
	policy, ok := policies[entity]
	return policy, ok
}

// SoftDelete marks the root row and every active dependent as deleted.
// It must run inside the caller's transaction so the cascade is atomic.
func SoftDelete(tx *gorm.DB, entity Entity, keys Keys) (*Result, error) {
	policy, ok := policies[entity]
	if !ok {
		return nil, fmt.Errorf("no cascade policy for %s", entity)
	}

	rootID, ok := keys[KeyID]
	if !ok {
		return nil, fmt.Errorf("cascade for %s requires key %q", entity, KeyID)
	}

	rootResult := tx.Table(policy.RootTable).
		Where("id = ? AND is_deleted = ?", rootID, false).
		Update("is_deleted", true)
	if rootResult.Error != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", entity, rootResult.Error)
	}

	result := &Result{
		Root:     rootResult.RowsAffected,
		Affected: make(map[string]int64),
	}

	for _, dependent := range policy.Dependents {
		// features not linked into the binary have no table
		if !tx.Migrator().HasTable(dependent.Table) {
			continue
		}

		query := tx.Table(dependent.Table).Where("is_deleted = ?", false)

		for column, keyName := range dependent.Match {
			value, ok := keys[keyName]
			if !ok {
				return nil, fmt.Errorf("cascade for %s requires key %q", entity, keyName)
			}
			query = query.Where(column+" = ?", value)
		}

		updateResult := query.Update("is_deleted", true)
		if updateResult.Error != nil {
			return nil, fmt.Errorf("failed to cascade %s to %s: %w", entity, dependent.Table, updateResult.Error)
		}

		result.Affected[dependent.Table] += updateResult.RowsAffected
	}

	return result, nil
}
