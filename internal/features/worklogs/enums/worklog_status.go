package worklogs_enums

type WorklogStatus string

const (
	WorklogStatusSubmitted  WorklogStatus = "SUBMITTED"
	WorklogStatusInProgress WorklogStatus = "IN_PROGRESS"
	WorklogStatusCompleted  WorklogStatus = "COMPLETED"
)

func (s WorklogStatus) IsValid() bool {
	switch s {
	case WorklogStatusSubmitted, WorklogStatusInProgress, WorklogStatusCompleted:
		return true
	default:
		return false
	}
}
