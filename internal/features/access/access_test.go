package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type accessFixture struct {
	projectID   uuid.UUID
	beneficiary uuid.UUID
	delegate    uuid.UUID
	stranger    uuid.UUID
}

func newAccessFixture() accessFixture {
	return accessFixture{
		projectID:   uuid.New(),
		beneficiary: uuid.New(),
		delegate:    uuid.New(),
		stranger:    uuid.New(),
	}
}

func (f accessFixture) directWorklog() Subject {
	return Subject{Kind: SubjectWorklog, ProjectID: f.projectID, BeneficiaryID: f.beneficiary}
}

func (f accessFixture) delegatedWorklog() Subject {
	delegate := f.delegate
	return Subject{Kind: SubjectWorklog, ProjectID: f.projectID, BeneficiaryID: f.beneficiary, DelegateID: &delegate}
}

func (f accessFixture) delegation() Subject {
	delegate := f.delegate
	return Subject{Kind: SubjectDelegation, ProjectID: f.projectID, BeneficiaryID: f.beneficiary, DelegateID: &delegate}
}

func (f accessFixture) assignment() Subject {
	return Subject{Kind: SubjectAssignment, ProjectID: f.projectID, BeneficiaryID: f.beneficiary}
}

func (f accessFixture) actingFor() Relationship {
	beneficiary := f.beneficiary
	return Relationship{CallerActsFor: &beneficiary}
}

func Test_Authorize_WhenCallerIsAdmin_AllowsEverything(t *testing.T) {
	f := newAccessFixture()
	admin := Caller{ID: f.stranger, IsAdmin: true}

	for _, subject := range []Subject{f.directWorklog(), f.delegation(), f.assignment()} {
		for _, op := range []Operation{OperationCreate, OperationRead, OperationUpdate, OperationDelete} {
			decision := Authorize(op, subject, admin, Relationship{})
			assert.True(t, decision.Allowed, "%s %s", op, subject.Kind)
			assert.Equal(t, ReasonAdmin, decision.Reason)
		}
	}
}

func Test_Authorize_Worklog_FollowsDecisionTable(t *testing.T) {
	f := newAccessFixture()
	member := Relationship{CallerIsMember: true}

	testCases := []struct {
		name         string
		operation    Operation
		subject      Subject
		caller       uuid.UUID
		relationship Relationship
		allowed      bool
		reason       string
	}{
		{"beneficiary creates as member", OperationCreate, f.directWorklog(), f.beneficiary, member, true, ReasonBeneficiary},
		{"beneficiary creates without membership", OperationCreate, f.directWorklog(), f.beneficiary, Relationship{}, false, ReasonNotMember},
		{"beneficiary updates own", OperationUpdate, f.delegatedWorklog(), f.beneficiary, Relationship{}, true, ReasonBeneficiary},
		{"beneficiary deletes own", OperationDelete, f.directWorklog(), f.beneficiary, Relationship{}, true, ReasonBeneficiary},
		{"active delegate creates", OperationCreate, f.directWorklog(), f.delegate, f.actingFor(), true, ReasonActiveDelegate},
		{"active delegate edits own entry", OperationUpdate, f.delegatedWorklog(), f.delegate, f.actingFor(), true, ReasonActiveDelegate},
		{"active delegate edits entry made by beneficiary", OperationUpdate, f.directWorklog(), f.delegate, f.actingFor(), false, ReasonNotRecordDelegate},
		{"active delegate deletes entry made by beneficiary", OperationDelete, f.directWorklog(), f.delegate, f.actingFor(), false, ReasonNotRecordDelegate},
		{"active delegate reads entry made by beneficiary", OperationRead, f.directWorklog(), f.delegate, f.actingFor(), true, ReasonActiveDelegate},
		{"active delegate deletes", OperationDelete, f.delegatedWorklog(), f.delegate, f.actingFor(), true, ReasonActiveDelegate},
		{"former delegate edits own entry", OperationUpdate, f.delegatedWorklog(), f.delegate, Relationship{}, false, ReasonNoRelationship},
		{"former delegate reads own entry", OperationRead, f.delegatedWorklog(), f.delegate, Relationship{}, false, ReasonNoRelationship},
		{"member reads teammate entry", OperationRead, f.directWorklog(), f.stranger, member, true, ReasonTeamVisibility},
		{"member edits teammate entry", OperationUpdate, f.directWorklog(), f.stranger, member, false, ReasonNoRelationship},
		{"stranger reads", OperationRead, f.directWorklog(), f.stranger, Relationship{}, false, ReasonNoRelationship},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.operation, tc.subject, Caller{ID: tc.caller}, tc.relationship)

			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

func Test_Authorize_DelegateActingForSomeoneElse_IsDenied(t *testing.T) {
	f := newAccessFixture()
	otherBeneficiary := uuid.New()

	decision := Authorize(
		OperationCreate,
		f.directWorklog(),
		Caller{ID: f.delegate},
		Relationship{CallerActsFor: &otherBeneficiary},
	)

	assert.False(t, decision.Allowed)
}

func Test_Authorize_SecondDelegateChangingFirstDelegateEntry_IsDenied(t *testing.T) {
	f := newAccessFixture()
	secondDelegate := uuid.New()

	for _, op := range []Operation{OperationUpdate, OperationDelete} {
		decision := Authorize(op, f.delegatedWorklog(), Caller{ID: secondDelegate}, f.actingFor())

		assert.False(t, decision.Allowed, op)
		assert.Equal(t, ReasonNotRecordDelegate, decision.Reason)
	}

	read := Authorize(OperationRead, f.delegatedWorklog(), Caller{ID: secondDelegate}, f.actingFor())
	assert.True(t, read.Allowed)
}

func Test_Authorize_Delegation_FollowsDecisionTable(t *testing.T) {
	f := newAccessFixture()
	member := Relationship{CallerIsMember: true}

	testCases := []struct {
		name         string
		operation    Operation
		caller       uuid.UUID
		relationship Relationship
		allowed      bool
		reason       string
	}{
		{"beneficiary creates as member", OperationCreate, f.beneficiary, member, true, ReasonBeneficiary},
		{"beneficiary creates without membership", OperationCreate, f.beneficiary, Relationship{}, false, ReasonNotMember},
		{"beneficiary removes", OperationDelete, f.beneficiary, member, true, ReasonBeneficiary},
		{"delegate removes own delegation", OperationDelete, f.delegate, f.actingFor(), false, ReasonDelegateCannotDrop},
		{"delegate updates own delegation", OperationUpdate, f.delegate, f.actingFor(), false, ReasonNoRelationship},
		{"delegate reads own delegation", OperationRead, f.delegate, f.actingFor(), true, ReasonActiveDelegate},
		{"member reads delegation", OperationRead, f.stranger, member, true, ReasonTeamVisibility},
		{"member removes someone else's delegation", OperationDelete, f.stranger, member, false, ReasonNoRelationship},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.operation, f.delegation(), Caller{ID: tc.caller}, tc.relationship)

			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

func Test_Authorize_Assignment_OnlyAdminMutates(t *testing.T) {
	f := newAccessFixture()
	member := Relationship{CallerIsMember: true}

	for _, op := range []Operation{OperationCreate, OperationUpdate, OperationDelete} {
		assert.False(t, Authorize(op, f.assignment(), Caller{ID: f.beneficiary}, member).Allowed, op)
	}

	assignee := Authorize(OperationRead, f.assignment(), Caller{ID: f.beneficiary}, Relationship{})
	assert.True(t, assignee.Allowed)
	assert.Equal(t, ReasonAssignee, assignee.Reason)

	delegate := Authorize(OperationRead, f.assignment(), Caller{ID: f.delegate}, f.actingFor())
	assert.True(t, delegate.Allowed)

	stranger := Authorize(OperationRead, f.assignment(), Caller{ID: f.stranger}, Relationship{})
	assert.False(t, stranger.Allowed)
}
