package mail

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownJob = errors.New("unknown mail job")

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type action struct {
	URL   string
	Label string
}

type view struct {
	Title    string
	UserName string
	Name     string
	Email    string
	Subject  string
	Message  string
	Action   *action
}

// Renderer turns queued jobs into messages.
type Renderer struct {
	tmpl        *template.Template
	frontendURL string
}

func NewRenderer(frontendURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Renderer{
		tmpl:        tmpl,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}, nil
}

// ResetLink builds the frontend link carrying a plaintext reset token.
func (r *Renderer) ResetLink(token string) string {
	return r.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func (r *Renderer) loginLink() string {
	return r.frontendURL + "/login"
}

func (r *Renderer) Render(job *Job) (*Message, error) {
	switch job.Name {
	case JobWelcome:
		var p WelcomePayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		return r.render("welcome", p.Email, "Welcome to Abhishek Garg Portfolio Platform", view{
			Title:    "Welcome aboard",
			UserName: p.UserName,
			Action:   &action{URL: r.loginLink(), Label: "Sign in"},
		})
	case JobPasswordReset:
		var p PasswordResetPayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		if p.ResetToken == "" {
			return nil, fmt.Errorf("%s: reset token is empty", job.Name)
		}
		return r.render("password-reset", p.Email, "Password Reset Request", view{
			Title:    "Reset your password",
			UserName: p.UserName,
			Action:   &action{URL: r.ResetLink(p.ResetToken), Label: "Reset password"},
		})
	case JobPasswordResetConfirmation:
		var p PasswordResetConfirmationPayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		return r.render("password-reset-confirmation", p.Email, "Password Reset Successful", view{
			Title:    "Password changed",
			UserName: p.UserName,
			Action:   &action{URL: r.loginLink(), Label: "Sign in"},
		})
	case JobGeneric:
		var p GenericPayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		if p.To == "" {
			return nil, fmt.Errorf("%s: recipient is empty", job.Name)
		}
		return &Message{To: p.To, Subject: p.Subject, HTML: p.HTML}, nil
	case JobUserQueryNotification:
		var p UserQueryNotificationPayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		return r.render("user-query-notification", p.AdminEmail, "New Query: "+p.Subject, view{
			Title:   "New contact query",
			Name:    p.Name,
			Email:   p.Email,
			Subject: p.Subject,
			Message: p.Message,
		})
	case JobUserQueryConfirmation:
		var p UserQueryConfirmationPayload
		if err := decode(job, &p); err != nil {
			return nil, err
		}
		return r.render("user-query-confirmation", p.Email, "We Received Your Query", view{
			Title:   "Thanks for getting in touch",
			Name:    p.Name,
			Subject: p.Subject,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, job.Name)
	}
}

func (r *Renderer) render(name, to, subject string, data view) (*Message, error) {
	if to == "" {
		return nil, fmt.Errorf("%s: recipient is empty", name)
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &Message{To: to, Subject: subject, HTML: buf.String()}, nil
}

func decode(job *Job, dest interface{}) error {
	if err := json.Unmarshal(job.Payload, dest); err != nil {
		return fmt.Errorf("decode %s payload: %w", job.Name, err)
	}
	return nil
}
