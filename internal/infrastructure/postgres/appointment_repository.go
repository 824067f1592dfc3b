package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carteira/internal/domain/appointment"
)

// AppointmentRepository implements the appointment.Repository interface for PostgreSQL
type AppointmentRepository struct {
	db *DB
}

// NewAppointmentRepository creates a new PostgreSQL appointment repository
func NewAppointmentRepository(db *DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `id, user_id, appointment_date, appointment_time, status, message,
	       user_email, user_name, user_phone, created_at`

// Create stores a new pending appointment
func (r *AppointmentRepository) Create(ctx context.Context, params appointment.CreateParams) (*appointment.Appointment, error) {
	query := `
		INSERT INTO appointments (id, user_id, appointment_date, appointment_time, message, user_email, user_name, user_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + appointmentColumns

	apt, err := scanAppointment(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Date, params.Time,
		params.Message, params.UserEmail, params.UserName, nullString(params.UserPhone),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	return apt, nil
}

// GetByID retrieves an appointment by its ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	apt, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, appointment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return apt, nil
}

// ListByUserID retrieves all appointments for a user, newest first
func (r *AppointmentRepository) ListByUserID(ctx context.Context, userID string) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, userID)
}

// ListByStatus retrieves all appointments with the given status, oldest first
// so the back office works through requests in arrival order
func (r *AppointmentRepository) ListByStatus(ctx context.Context, status string) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = $1
		ORDER BY created_at ASC
	`

	return r.list(ctx, query, status)
}

// UpdateStatus moves an appointment to a new status
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE appointments SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return appointment.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]*appointment.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*appointment.Appointment
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	var apt appointment.Appointment
	var phone sql.NullString

	err := row.Scan(
		&apt.ID, &apt.UserID, &apt.Date, &apt.Time, &apt.Status, &apt.Message,
		&apt.UserEmail, &apt.UserName, &phone, &apt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.UserPhone = phone.String
	return &apt, nil
}
