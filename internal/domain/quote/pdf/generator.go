package pdf

import (
	"fmt"

	"coalo/go_backend/internal/domain/quote"
)

// Generator renders a numbered quote into a finished document.
type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}

// RenderError is a document asset that could not be used. Rendering carries on
// with a placeholder.
type RenderError struct {
	Asset string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render asset %s: %v", e.Asset, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
