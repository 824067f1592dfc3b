package appointment

import "context"

// Notifier defines the interface for pushing appointment events to the
// back-office notification topic.
// Implemented by the Firebase FCM client in the infrastructure layer.
type Notifier interface {
	NotifyTopic(ctx context.Context, title, body string, data map[string]string) error
}
