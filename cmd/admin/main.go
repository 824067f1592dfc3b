package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"carteira/internal/domain/appointment"
	"carteira/internal/infrastructure/firebase"
	"carteira/internal/infrastructure/postgres"
	"carteira/internal/shared/config"
	"carteira/internal/shared/messages"
)

const usage = `Carteira Admin CLI - Back office commands for the Carteira API

Usage:
  admin <command> [options]

Commands:
  appointments   List appointment requests by status
  confirm        Confirm a pending appointment
  cancel         Cancel an appointment

Examples:
  # List pending consulting requests, oldest first
  admin appointments

  # List confirmed appointments
  admin appointments --status=confirmed

  # Confirm a request (pushes a notification to the back-office topic)
  admin confirm --id=550e8400-e29b-41d4-a716-446655440000

  # Cancel a request
  admin cancel --id=550e8400-e29b-41d4-a716-446655440000
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "appointments":
		runListAppointments(os.Args[2:])
	case "confirm":
		runTransition(os.Args[2:], "confirm")
	case "cancel":
		runTransition(os.Args[2:], "cancel")
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// newAppointmentService loads config, connects to the database and builds the
// appointment service. The returned cleanup closes the database.
func newAppointmentService(ctx context.Context) (*appointment.Service, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	msgs := messages.Default()
	if cfg.Firebase.MessagesFile != "" {
		if loaded, err := messages.Load(cfg.Firebase.MessagesFile); err == nil {
			msgs = loaded
		}
	}

	var notifier appointment.Notifier
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.AppointmentTopic)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase, notifications disabled: %v", err)
		} else {
			notifier = fcmClient
		}
	}

	repo := postgres.NewAppointmentRepository(db)
	return appointment.NewService(repo, notifier, msgs), func() { db.Close() }
}

func runListAppointments(args []string) {
	fs := flag.NewFlagSet("appointments", flag.ExitOnError)
	status := fs.String("status", appointment.StatusPending, "Status to list (pending|confirmed|cancelled)")
	timeoutStr := fs.String("timeout", "30s", "Timeout for the operation")

	fs.Usage = func() {
		fmt.Println("Usage: admin appointments [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, cleanup := newAppointmentService(ctx)
	defer cleanup()

	appts, err := svc.ListByStatus(ctx, *status)
	if err != nil {
		log.Fatalf("Failed to list appointments: %v", err)
	}

	if len(appts) == 0 {
		fmt.Printf("No %s appointments\n", *status)
		return
	}

	fmt.Printf("%d %s appointment(s):\n", len(appts), *status)
	for _, a := range appts {
		printAppointment(a)
	}
}

func runTransition(args []string, action string) {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	id := fs.String("id", "", "Appointment ID")
	timeoutStr := fs.String("timeout", "30s", "Timeout for the operation")

	fs.Usage = func() {
		fmt.Printf("Usage: admin %s --id=<appointment-id>\n\nOptions:\n", action)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *id == "" {
		fmt.Println("Error: must specify --id")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, cleanup := newAppointmentService(ctx)
	defer cleanup()

	var appt *appointment.Appointment
	switch action {
	case "confirm":
		appt, err = svc.Confirm(ctx, *id)
	case "cancel":
		appt, err = svc.Cancel(ctx, *id)
	}
	if err != nil {
		log.Fatalf("Failed to %s appointment: %v", action, err)
	}

	fmt.Printf("Appointment %s is now %s\n", appt.ID, appt.Status)
	printAppointment(appt)
}

func printAppointment(a *appointment.Appointment) {
	fmt.Printf("\n=== %s ===\n", a.ID)
	fmt.Printf("  When:    %s %s\n", a.Date, a.Time)
	fmt.Printf("  Status:  %s\n", a.Status)
	fmt.Printf("  Contact: %s <%s>", a.UserName, a.UserEmail)
	if a.UserPhone != "" {
		fmt.Printf(" %s", a.UserPhone)
	}
	fmt.Println()
	if a.Message != "" {
		fmt.Printf("  Message: %s\n", a.Message)
	}
	fmt.Printf("  Created: %s\n", a.CreatedAt.Format(time.RFC3339))
}
