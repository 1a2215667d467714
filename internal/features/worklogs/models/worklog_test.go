package worklogs_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SetAttribution_Delegated_SetsShadowColumns(t *testing.T) {
	beneficiary := uuid.New()
	delegate := uuid.New()
	worklog := &Worklog{}

	worklog.SetAttribution(Delegated(beneficiary, delegate))

	assert.Equal(t, beneficiary, worklog.UserID)
	require.NotNil(t, worklog.ShadowResourceID)
	assert.Equal(t, delegate, *worklog.ShadowResourceID)
	assert.True(t, worklog.IsShadowResourceWorklog)

	attribution := worklog.Attribution()
	assert.Equal(t, AttributionDelegated, attribution.Kind())
	assert.Equal(t, delegate, attribution.ActorID())
}

func Test_SetAttribution_BackToDirect_ClearsShadowColumns(t *testing.T) {
	beneficiary := uuid.New()
	worklog := &Worklog{}

	worklog.SetAttribution(Delegated(beneficiary, uuid.New()))
	worklog.SetAttribution(Direct(beneficiary))

	assert.Nil(t, worklog.ShadowResourceID)
	assert.False(t, worklog.IsShadowResourceWorklog)
	assert.Nil(t, worklog.Subject().DelegateID)
}

func Test_AttributionFor_PicksVariantFromActor(t *testing.T) {
	beneficiary := uuid.New()

	assert.False(t, AttributionFor(beneficiary, beneficiary).IsDelegated())
	assert.True(t, AttributionFor(beneficiary, uuid.New()).IsDelegated())
}

func Test_BeforeSave_WithMismatchedShadowFlag_ReturnsError(t *testing.T) {
	delegate := uuid.New()

	flagOnly := &Worklog{UserID: uuid.New(), IsShadowResourceWorklog: true}
	assert.ErrorIs(t, flagOnly.BeforeSave(nil), ErrAttributionMismatch)

	idOnly := &Worklog{UserID: uuid.New(), ShadowResourceID: &delegate}
	assert.ErrorIs(t, idOnly.BeforeSave(nil), ErrAttributionMismatch)
}

func Test_BeforeSave_WhenBeneficiaryIsOwnShadow_ReturnsError(t *testing.T) {
	userID := uuid.New()
	worklog := &Worklog{UserID: userID, ShadowResourceID: &userID, IsShadowResourceWorklog: true}

	assert.ErrorIs(t, worklog.BeforeSave(nil), ErrSelfDelegated)
}

func Test_BeforeSave_Valid_NormalizesFields(t *testing.T) {
	worklog := &Worklog{UserID: uuid.New(), Description: "  review  ", HoursWorked: 1.234}

	require.NoError(t, worklog.BeforeSave(nil))

	assert.Equal(t, "review", worklog.Description)
	assert.Equal(t, 1.23, worklog.HoursWorked)
	assert.Equal(t, "SUBMITTED", string(worklog.Status))
}
