// Package contact handles enquiries from the site's contact form.
package contact

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coalo/go_backend/internal/domain/quote"
)

type Method string

const (
	ByEmail Method = "email"
	ByPhone Method = "phone"
)

const MaxMessageLength = 4000

type Request struct {
	Name             string
	Phone            string
	Email            string
	Message          string
	PreferredContact Method
}

type Lead struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Message          string    `json:"message,omitempty"`
	PreferredContact Method    `json:"preferred_contact"`
	ReceivedAt       time.Time `json:"received_at"`
}

// Recorder counts accepted leads.
type Recorder interface {
	LeadReceived(preferred string)
}

type Service struct {
	// Delay holds every accepted submission for a fixed time before answering.
	Delay    time.Duration
	Recorder Recorder
	Log      logrus.FieldLogger

	now   func() time.Time
	newID func() string
}

func NewService(delay time.Duration, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		Delay: delay,
		Log:   log,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Validate reports every invalid field of req using the same error type as
// quote requests. An empty preferred contact method means email.
func Validate(req Request) error {
	var fields []quote.FieldError
	add := func(f, m string) { fields = append(fields, quote.FieldError{Field: f, Message: m}) }

	if strings.TrimSpace(req.Name) == "" {
		add("name", "name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		add("phone", "phone is required")
	}
	if email := strings.TrimSpace(req.Email); email == "" {
		add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		add("email", "email is not a valid address")
	}
	if len(req.Message) > MaxMessageLength {
		add("message", "message is too long")
	}
	switch req.PreferredContact {
	case "", ByEmail, ByPhone:
	default:
		add("preferred_contact", "preferred contact must be email or phone")
	}
	if len(fields) > 0 {
		return &quote.ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates and records an enquiry. Nothing is sent anywhere; the lead
// is logged and returned to the caller.
func (s *Service) Submit(ctx context.Context, req Request) (Lead, error) {
	if err := Validate(req); err != nil {
		return Lead{}, err
	}
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return Lead{}, ctx.Err()
		case <-t.C:
		}
	}

	preferred := req.PreferredContact
	if preferred == "" {
		preferred = ByEmail
	}
	lead := Lead{
		ID:               s.newID(),
		Name:             strings.TrimSpace(req.Name),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		Message:          strings.TrimSpace(req.Message),
		PreferredContact: preferred,
		ReceivedAt:       s.now(),
	}
	if s.Recorder != nil {
		s.Recorder.LeadReceived(string(preferred))
	}
	s.Log.WithFields(logrus.Fields{
		"lead_id":           lead.ID,
		"preferred_contact": lead.PreferredContact,
	}).Info("contact: lead received")
	return lead, nil
}
