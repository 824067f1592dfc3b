package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"carteira/internal/domain/appointment"
	"carteira/internal/shared/messages"
)

// AppointmentDigestJob implements the Job interface. It counts pending
// consulting requests and pushes a digest to the back-office topic so staff
// work through the queue at the scheduled times instead of per-request pings.
type AppointmentDigestJob struct {
	appointments *appointment.Service
	notifier     appointment.Notifier
	msgs         *messages.Messages
}

// NewAppointmentDigestJob creates a new digest job
func NewAppointmentDigestJob(appointments *appointment.Service, notifier appointment.Notifier, msgs *messages.Messages) *AppointmentDigestJob {
	return &AppointmentDigestJob{
		appointments: appointments,
		notifier:     notifier,
		msgs:         msgs,
	}
}

// Execute runs the digest job
func (j *AppointmentDigestJob) Execute(ctx context.Context) error {
	pending, err := j.appointments.ListByStatus(ctx, appointment.StatusPending)
	if err != nil {
		return fmt.Errorf("listing pending appointments: %w", err)
	}

	if len(pending) == 0 {
		log.Println("Appointment digest: no pending appointments, skipping push")
		return nil
	}

	body := fmt.Sprintf(j.msgs.AppointmentDigest.Body, len(pending))
	data := map[string]string{
		"pendingCount": strconv.Itoa(len(pending)),
	}
	if err := j.notifier.NotifyTopic(ctx, j.msgs.AppointmentDigest.Title, body, data); err != nil {
		return fmt.Errorf("pushing appointment digest: %w", err)
	}

	log.Printf("Appointment digest: notified back office of %d pending appointments", len(pending))
	return nil
}

// Description returns a human-readable description of the job
func (j *AppointmentDigestJob) Description() string {
	return "pending appointment digest"
}
