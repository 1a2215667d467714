package access

import "github.com/google/uuid"

type Operation string

const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

type SubjectKind string

const (
	SubjectWorklog    SubjectKind = "worklog"
	SubjectDelegation SubjectKind = "delegation"
	SubjectAssignment SubjectKind = "assignment"
)

// Caller is the identity of whoever issues the request
type Caller struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Subject describes the record being acted on. BeneficiaryID is the
// accountable user: worklog owner, delegation grantor or assignee.
// DelegateID is set for delegations and delegated worklogs.
type Subject struct {
	Kind          SubjectKind
	ProjectID     uuid.UUID
	BeneficiaryID uuid.UUID
	DelegateID    *uuid.UUID
}

// Relationship holds facts about the caller on the subject's project.
// It must be resolved right before each decision, never reused.
type Relationship struct {
	CallerIsMember bool
	// beneficiary the caller currently acts for on this project, if any
	CallerActsFor *uuid.UUID
}

func (r Relationship) ActsFor(beneficiaryID uuid.UUID) bool {
	return r.CallerActsFor != nil && *r.CallerActsFor == beneficiaryID
}

func (r Relationship) IsDelegate() bool {
	return r.CallerActsFor != nil
}

type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonAdmin              = "caller is an administrator"
	ReasonDelegateCannotDrop = "delegates cannot remove their own delegation"
	ReasonBeneficiary        = "caller is the beneficiary"
	ReasonNotMember          = "caller is not an active project member"
	ReasonActiveDelegate     = "caller is an active delegate for the beneficiary"
	ReasonNotRecordDelegate  = "delegates may only change entries they wrote"
	ReasonTeamVisibility     = "caller is on the project team"
	ReasonAssignee           = "caller is the assignee"
	ReasonNoRelationship     = "caller has no permission on this record"
)

func allow(reason string) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize is the single decision point for worklogs, delegations and
// assignments. Rules are evaluated top to bottom and the first match wins.
func Authorize(operation Operation, subject Subject, caller Caller, relationship Relationship) Decision {
	if caller.IsAdmin {
		return allow(ReasonAdmin)
	}

	isBeneficiary := caller.ID == subject.BeneficiaryID
	isRecordDelegate := subject.DelegateID != nil && *subject.DelegateID == caller.ID

	switch subject.Kind {
	case SubjectDelegation:
		if isRecordDelegate && operation == OperationDelete {
			return deny(ReasonDelegateCannotDrop)
		}
		if isBeneficiary {
			return authorizeOwner(operation, relationship)
		}
		if isRecordDelegate && operation == OperationRead {
			return allow(ReasonActiveDelegate)
		}

	case SubjectWorklog:
		if isBeneficiary {
			return authorizeOwner(operation, relationship)
		}
		if relationship.ActsFor(subject.BeneficiaryID) {
			if operation == OperationCreate || operation == OperationRead || isRecordDelegate {
				return allow(ReasonActiveDelegate)
			}
			return deny(ReasonNotRecordDelegate)
		}

	case SubjectAssignment:
		if isBeneficiary && operation == OperationRead {
			return allow(ReasonAssignee)
		}
	}

	if operation == OperationRead && canSeeTeamRecord(subject, relationship) {
		return allow(ReasonTeamVisibility)
	}

	return deny(ReasonNoRelationship)
}

func authorizeOwner(operation Operation, relationship Relationship) Decision {
	if operation == OperationCreate && !relationship.CallerIsMember {
		return deny(ReasonNotMember)
	}

	return allow(ReasonBeneficiary)
}

// Members see the whole project team. A delegate only sees what belongs
// to the beneficiary they currently act for.
func canSeeTeamRecord(subject Subject, relationship Relationship) bool {
	if relationship.CallerIsMember {
		return true
	}

	return relationship.ActsFor(subject.BeneficiaryID)
}
