package appointment

import (
	"errors"
	"net/mail"
	"time"
)

// Appointment statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrNotFound      = errors.New("appointment not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Appointment is a consulting session request. It is created as pending and
// moves to confirmed or cancelled through the back office.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	UserPhone string    `json:"userPhone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for requesting a new appointment
type CreateParams struct {
	ID        string
	UserID    string
	Date      string
	Time      string
	Message   string
	UserEmail string
	UserName  string
	UserPhone string
}

// Validate validates the create parameters. Date and time keep the
// "2006-01-02" and "15:04" wire formats.
func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("appointment ID is required")
	}
	if p.UserID == "" {
		return errors.New("user ID is required")
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", p.Time); err != nil {
		return errors.New("time must be in HH:MM format")
	}
	if p.UserEmail == "" {
		return errors.New("contact email is required")
	}
	if _, err := mail.ParseAddress(p.UserEmail); err != nil {
		return errors.New("valid contact email is required")
	}
	if p.UserName == "" {
		return errors.New("contact name is required")
	}
	return nil
}

// IsValidStatus checks if the provided status is valid.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}
