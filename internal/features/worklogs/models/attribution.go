package worklogs_models

import "github.com/google/uuid"

type AttributionKind string

const (
	AttributionDirect    AttributionKind = "DIRECT"
	AttributionDelegated AttributionKind = "DELEGATED"
)

// Attribution says who is accountable for a worklog and, for delegated
// entries, who actually wrote it. The zero value is not valid.
type Attribution struct {
	kind          AttributionKind
	beneficiaryID uuid.UUID
	actorID       uuid.UUID
}

func Direct(beneficiaryID uuid.UUID) Attribution {
	return Attribution{kind: AttributionDirect, beneficiaryID: beneficiaryID, actorID: beneficiaryID}
}

func Delegated(beneficiaryID, actorID uuid.UUID) Attribution {
	return Attribution{kind: AttributionDelegated, beneficiaryID: beneficiaryID, actorID: actorID}
}

// AttributionFor picks the variant from who writes the entry for whom
func AttributionFor(beneficiaryID, actorID uuid.UUID) Attribution {
	if beneficiaryID == actorID {
		return Direct(beneficiaryID)
	}

	return Delegated(beneficiaryID, actorID)
}

func (a Attribution) Kind() AttributionKind {
	return a.kind
}

func (a Attribution) BeneficiaryID() uuid.UUID {
	return a.beneficiaryID
}

func (a Attribution) ActorID() uuid.UUID {
	return a.actorID
}

func (a Attribution) IsDelegated() bool {
	return a.kind == AttributionDelegated
}

// DelegateID is nil for direct entries
func (a Attribution) DelegateID() *uuid.UUID {
	if !a.IsDelegated() {
		return nil
	}

	actorID := a.actorID
	return &actorID
}
