// Package mail holds the transactional email pipeline: job definitions, the
// Redis-backed queue, template rendering and SMTP delivery.
package mail

import (
	"encoding/json"
	"time"
)

const (
	JobWelcome                   = "send-welcome-email"
	JobPasswordReset             = "send-password-reset"
	JobPasswordResetConfirmation = "send-password-reset-confirmation"
	JobGeneric                   = "send-generic-email"
	JobUserQueryNotification     = "send-user-query-notification"
	JobUserQueryConfirmation     = "send-user-query-confirmation"
)

// Job is the unit stored in the queue. Payload is decoded by the worker
// according to Name.
type Job struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"maxAttempts"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastError   string          `json:"lastError,omitempty"`
}

type WelcomePayload struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

type PasswordResetPayload struct {
	Email      string `json:"email"`
	UserName   string `json:"userName"`
	ResetToken string `json:"resetToken"`
}

type PasswordResetConfirmationPayload struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

type GenericPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type UserQueryNotificationPayload struct {
	QueryID    string `json:"queryId"`
	AdminEmail string `json:"adminEmail"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
}

type UserQueryConfirmationPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}
