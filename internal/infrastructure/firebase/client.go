package firebase

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"carteira/internal/domain/appointment"
)

// Client implements appointment.Notifier using Firebase Cloud Messaging.
// Appointment updates go to a topic the advisory team's devices subscribe to,
// so no device token bookkeeping is needed.
type Client struct {
	msgClient *messaging.Client
	topic     string
}

var _ appointment.Notifier = (*Client)(nil)

// NewClient initializes a Firebase app and returns an FCM client publishing
// to the given topic.
func NewClient(ctx context.Context, credentialsFile, topic string) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient, topic: topic}, nil
}

// NotifyTopic publishes a notification to the configured topic
func (c *Client) NotifyTopic(ctx context.Context, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: c.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	id, err := c.msgClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	log.Printf("FCM message %s sent to topic %s", id, c.topic)
	return nil
}
