package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Renderer turns a quote into a document.
type Renderer interface {
	Generate(q Quote) ([]byte, error)
}

// Archiver keeps a copy of every delivered document.
type Archiver interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
}

// Recorder receives generation outcomes, typically for metrics.
type Recorder interface {
	QuoteGenerated(tier, cadence string)
	QuoteFailed(stage string)
}

type nopRecorder struct{}

func (nopRecorder) QuoteGenerated(string, string) {}
func (nopRecorder) QuoteFailed(string)            {}

type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Quote       Quote
}

type Service struct {
	Engine   *Engine
	Renderer Renderer
	Archive  Archiver
	Recorder Recorder
	Log      logrus.FieldLogger
}

func NewService(engine *Engine, renderer Renderer) *Service {
	return &Service{
		Engine:   engine,
		Renderer: renderer,
		Recorder: nopRecorder{},
		Log:      logrus.StandardLogger(),
	}
}

// Generate is the single entry point for producing a downloadable quote.
// Validation errors come back untouched; anything else is a *GenerationError.
func (s *Service) Generate(ctx context.Context, req Request) (art Artifact, err error) {
	defer s.recover(&err)

	q, err := s.Engine.Compute(ctx, req)
	if err != nil {
		return Artifact{}, s.fail(err)
	}

	data, err := s.Renderer.Generate(q)
	if err != nil {
		return Artifact{}, s.fail(&GenerationError{Stage: StageRender, Err: err})
	}

	art = Artifact{
		Filename:    q.Filename(),
		ContentType: "application/pdf",
		Data:        data,
		Quote:       q,
	}

	if s.Archive != nil {
		if err := s.Archive.Put(ctx, art.Filename, art.ContentType, data); err != nil {
			// the number is already spent and the document is valid; keep delivering
			s.recorder().QuoteFailed(StageArchive)
			s.Log.WithError(err).WithField("quote_number", q.Number).Warn("quote: archive failed")
		}
	}

	s.recorder().QuoteGenerated(string(req.Tier), string(req.Cadence))
	s.Log.WithFields(logrus.Fields{
		"quote_number": q.Number,
		"bytes":        len(data),
	}).Info("quote: generated")
	return art, nil
}

// Preview numbers the quote and returns its structured form instead of a
// rendered document.
func (s *Service) Preview(ctx context.Context, req Request) (p Preview, err error) {
	defer s.recover(&err)

	q, err := s.Engine.Compute(ctx, req)
	if err != nil {
		return Preview{}, s.fail(err)
	}
	s.recorder().QuoteGenerated(string(req.Tier), string(req.Cadence))
	return NewPreview(q), nil
}

func (s *Service) fail(err error) error {
	if IsValidation(err) {
		s.Log.WithError(err).Debug("quote: rejected")
		return err
	}
	stage := "unknown"
	var ge *GenerationError
	if errors.As(err, &ge) {
		stage = ge.Stage
	} else {
		err = &GenerationError{Stage: stage, Err: err}
	}
	s.recorder().QuoteFailed(stage)
	s.Log.WithError(err).WithField("stage", stage).Error("quote: generation failed")
	return err
}

func (s *Service) recover(err *error) {
	if r := recover(); r != nil {
		*err = &GenerationError{Stage: StagePanic, Err: fmt.Errorf("%v", r)}
		s.recorder().QuoteFailed(StagePanic)
		s.Log.WithField("panic", r).Error("quote: generation panicked")
	}
}

func (s *Service) recorder() Recorder {
	if s.Recorder == nil {
		return nopRecorder{}
	}
	return s.Recorder
}
