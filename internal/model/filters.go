package model

// TaskFilters is the active filter state for task list queries.
// A nil field means the dimension is unfiltered.
type TaskFilters struct {
	// Status restricts results to a single workflow status.
	Status *Status

	// Priority restricts results to a single priority level.
	Priority *Priority

	// AssignedToMe restricts results to tasks assigned to the
	// authenticated user.
	AssignedToMe *bool

	// Search is a free-text query over title and description.
	Search *string
}
