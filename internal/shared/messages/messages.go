package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Messages struct {
	AppointmentScheduled MessageText `json:"appointment_scheduled"`
	AppointmentConfirmed MessageText `json:"appointment_confirmed"`
	AppointmentCancelled MessageText `json:"appointment_cancelled"`
	AppointmentDigest    MessageText `json:"appointment_digest"`
	SubscriptionActive   MessageText `json:"subscription_active"`
}

var (
	loaded   Messages
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in notification texts, used when no messages
// file is configured.
func Default() *Messages {
	return &Messages{
		AppointmentScheduled: MessageText{Title: "Novo agendamento", Body: "Pedido de consultoria para %s"},
		AppointmentConfirmed: MessageText{Title: "Agendamento confirmado", Body: "Consultoria confirmada para %s"},
		AppointmentCancelled: MessageText{Title: "Agendamento cancelado", Body: "Consultoria cancelada: %s"},
		AppointmentDigest:    MessageText{Title: "Agendamentos pendentes", Body: "%d pedidos de consultoria aguardam resposta"},
		SubscriptionActive:   MessageText{Title: "Assinatura ativa", Body: "Bem-vindo ao plano premium"},
	}
}

// Load reads the notifications JSON file and caches the result.
// Safe to call from multiple goroutines.
func Load(path string) (*Messages, error) {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read messages file: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to parse messages file: %w", err)
		}
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return &loaded, nil
}
