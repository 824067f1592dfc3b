package user

import (
	"errors"
	"net/mail"
	"time"
)

// Risk profiles, most conservative first
const (
	ProfileConservador = "conservador"
	ProfileModerado    = "moderado"
	ProfileArrojado    = "arrojado"
)

// Subscription statuses
const (
	SubscriptionFree = "free"
	SubscriptionPaid = "paid"
)

// QuizQuestions is the number of answers the suitability quiz expects.
const QuizQuestions = 5

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAnswers     = errors.New("quiz requires five answers between 1 and 3")
)

// User represents an application user
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"displayName"`
	PhotoURL           string    `json:"photoURL,omitempty"`
	PasswordHash       string    `json:"-"`
	OAuthProvider      string    `json:"-"`
	OAuthID            string    `json:"-"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	SubscriptionID     string    `json:"-"`
	CustomerID         string    `json:"-"`
	RiskProfile        string    `json:"riskProfile,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new user
type CreateParams struct {
	ID            string
	Email         string
	DisplayName   string
	PasswordHash  string
	OAuthProvider string
	OAuthID       string
	PhotoURL      string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("user ID is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.New("valid email is required")
	}
	if p.PasswordHash == "" && p.OAuthProvider == "" {
		return errors.New("either a password or an OAuth identity is required")
	}
	return nil
}

// SubscriptionParams contains the billing fields mutated by webhook processing
type SubscriptionParams struct {
	Status         string
	SubscriptionID string
	CustomerID     string
}

// ClassifyRiskProfile scores the suitability quiz. Each answer is worth
// 1 (conservative) to 3 (aggressive); the average decides the profile.
func ClassifyRiskProfile(answers []int) (string, error) {
	if len(answers) != QuizQuestions {
		return "", ErrInvalidAnswers
	}

	sum := 0
	for _, a := range answers {
		if a < 1 || a > 3 {
			return "", ErrInvalidAnswers
		}
		sum += a
	}

	avg := float64(sum) / float64(len(answers))
	switch {
	case avg <= 1.5:
		return ProfileConservador, nil
	case avg <= 2.5:
		return ProfileModerado, nil
	default:
		return ProfileArrojado, nil
	}
}

// IsValidProfile checks if the provided risk profile is valid.
func IsValidProfile(p string) bool {
	switch p {
	case ProfileConservador, ProfileModerado, ProfileArrojado:
		return true
	}
	return false
}

// EffectiveProfile returns the profile used for asset gating. Users who
// never answered the quiz browse as conservador.
func (u *User) EffectiveProfile() string {
	if IsValidProfile(u.RiskProfile) {
		return u.RiskProfile
	}
	return ProfileConservador
}
