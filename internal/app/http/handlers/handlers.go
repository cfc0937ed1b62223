package handlers

import (
	"github.com/sirupsen/logrus"

	"coalo/go_backend/internal/domain/contact"
	"coalo/go_backend/internal/domain/quote"
)

type Handlers struct {
	Quotes   *quote.Service
	Sequence quote.SequenceStore
	Contacts *contact.Service
	Log      logrus.FieldLogger
}

func New(quotes *quote.Service, seq quote.SequenceStore, contacts *contact.Service, log logrus.FieldLogger) *Handlers {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handlers{
		Quotes:   quotes,
		Sequence: seq,
		Contacts: contacts,
		Log:      log,
	}
}
