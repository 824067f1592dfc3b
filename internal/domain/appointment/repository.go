package appointment

import "context"

// Repository defines the interface for appointment data access
type Repository interface {
	// Create stores a new pending appointment
	Create(ctx context.Context, params CreateParams) (*Appointment, error)

	// GetByID retrieves an appointment by its ID
	GetByID(ctx context.Context, id string) (*Appointment, error)

	// ListByUserID retrieves all appointments for a user, newest first
	ListByUserID(ctx context.Context, userID string) ([]*Appointment, error)

	// ListByStatus retrieves all appointments with the given status
	ListByStatus(ctx context.Context, status string) ([]*Appointment, error)

	// UpdateStatus moves an appointment to a new status
	UpdateStatus(ctx context.Context, id, status string) error
}
