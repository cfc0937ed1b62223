package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"coalo/go_backend/internal/domain/contact"
)

type contactRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Message          string `json:"message"`
	PreferredContact string `json:"preferred_contact"`
}

func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var body contactRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	lead, err := h.Contacts.Submit(r.Context(), contact.Request{
		Name:             body.Name,
		Phone:            body.Phone,
		Email:            body.Email,
		Message:          body.Message,
		PreferredContact: contact.Method(strings.ToLower(strings.TrimSpace(body.PreferredContact))),
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// client went away
		return
	}
	if err != nil {
		writeDomainError(w, err, "We could not send your message. Please try again.")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":      lead.ID,
		"message": "Thank you for reaching out. A member of our team will contact you shortly via your preferred method.",
	})
}
