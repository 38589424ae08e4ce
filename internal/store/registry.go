package store

// Registry holds the application-wide store singletons. Callers
// acquire store references through an explicitly constructed Registry
// instead of ambient package state; its lifecycle is the lifetime of
// the application.
type Registry struct {
	tasks         *TaskStore
	notifications *NotificationStore
}

// NewRegistry wires the two stores into a registry.
func NewRegistry(tasks *TaskStore, notifications *NotificationStore) *Registry {
	return &Registry{
		tasks:         tasks,
		notifications: notifications,
	}
}

// Tasks returns the task collection store.
func (r *Registry) Tasks() *TaskStore {
	return r.tasks
}

// Notifications returns the notification feed store.
func (r *Registry) Notifications() *NotificationStore {
	return r.notifications
}
