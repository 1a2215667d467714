package projects_enums

type ProjectStatus string

const (
	ProjectStatusNew        ProjectStatus = "NEW"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusNew, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}

	return false
}

// IsActive reports whether work is still expected on the project
func (s ProjectStatus) IsActive() bool {
	return s == ProjectStatusNew || s == ProjectStatusInProgress
}
