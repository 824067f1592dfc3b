package appointment

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"carteira/internal/shared/messages"
)

// RequestParams is the user-facing input for an appointment request
type RequestParams struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	UserPhone string `json:"userPhone"`
}

// Service contains the business logic for appointments
type Service struct {
	repo     Repository
	notifier Notifier
	msgs     *messages.Messages
}

// NewService creates a new appointment service. notifier may be nil when
// push notifications are disabled.
func NewService(repo Repository, notifier Notifier, msgs *messages.Messages) *Service {
	return &Service{repo: repo, notifier: notifier, msgs: msgs}
}

// Request creates a pending appointment and pushes a notification to the
// back office. Notification failures are logged, never surfaced.
func (s *Service) Request(ctx context.Context, userID string, params RequestParams) (*Appointment, error) {
	createParams := CreateParams{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      params.Date,
		Time:      params.Time,
		Message:   params.Message,
		UserEmail: params.UserEmail,
		UserName:  params.UserName,
		UserPhone: params.UserPhone,
	}
	if err := createParams.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appt, err := s.repo.Create(ctx, createParams)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, s.msgs.AppointmentScheduled, appt)
	return appt, nil
}

// ListByUser retrieves all appointments for a user
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	return s.repo.ListByUserID(ctx, userID)
}

// ListByStatus retrieves all appointments with the given status
func (s *Service) ListByStatus(ctx context.Context, status string) ([]*Appointment, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByStatus(ctx, status)
}

// Confirm moves a pending appointment to confirmed
func (s *Service) Confirm(ctx context.Context, id string) (*Appointment, error) {
	return s.transition(ctx, id, StatusConfirmed, s.msgs.AppointmentConfirmed)
}

// Cancel moves an appointment to cancelled
func (s *Service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, s.msgs.AppointmentCancelled)
}

func (s *Service) transition(ctx context.Context, id, status string, msg messages.MessageText) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appt.Status = status

	s.notify(ctx, msg, appt)
	return appt, nil
}

func (s *Service) notify(ctx context.Context, msg messages.MessageText, appt *Appointment) {
	if s.notifier == nil {
		return
	}

	body := fmt.Sprintf(msg.Body, appt.Date+" "+appt.Time)
	data := map[string]string{
		"appointmentId": appt.ID,
		"status":        appt.Status,
	}
	if err := s.notifier.NotifyTopic(ctx, msg.Title, body, data); err != nil {
		log.Printf("failed to push appointment notification: %v", err)
	}
}
