package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// validate checks the same `binding` tags gin uses, so requests that do
// not come through the router are held to the same rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// ClientFactory builds the completer used for one evaluation.
type ClientFactory func(llm LLMConfig) Completer

// Dispatcher validates evaluation requests and routes them to the compare
// or jury orchestrator.
type Dispatcher struct {
	config    Config
	detectors *DetectorRegistry
	metrics   *Metrics
	newClient ClientFactory
}

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDetectors sets the registry used by the detector pass.
func WithDetectors(r *DetectorRegistry) DispatcherOption {
	return func(d *Dispatcher) { d.detectors = r }
}

// WithMetrics records evaluation and completion metrics into m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithClientFactory replaces the completion client constructor.
func WithClientFactory(f ClientFactory) DispatcherOption {
	return func(d *Dispatcher) { d.newClient = f }
}

// NewDispatcher creates a dispatcher bound to cfg.
func NewDispatcher(cfg Config, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{config: cfg}
	for _, opt := range opts {
		opt(d)
	}
	if d.detectors == nil {
		d.detectors = NewDetectorRegistry(nil)
	}
	if d.newClient == nil {
		d.newClient = func(llm LLMConfig) Completer {
			return NewCompletionClient(llm.BaseURL, llm.APIKey, d.config.CompletionTimeout, d.metrics)
		}
	}
	return d
}

// Evaluate runs req and returns a response whose populated result matches
// req.Mode.
func (d *Dispatcher) Evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error) {
	ctx, span := tracer.Start(ctx, "evaluation.evaluate", trace.WithAttributes(
		attribute.String("evaluation.mode", string(req.Mode)),
	))
	defer span.End()

	resp, err := d.evaluate(ctx, req)
	d.metrics.RecordEvaluation(req.Mode, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if resp.CompareResult != nil {
		d.metrics.RecordDetectorIssues(len(resp.CompareResult.DetectorIssues))
	}
	if resp.JuryResult != nil {
		d.metrics.RecordDetectorIssues(len(resp.JuryResult.DetectorIssues))
	}
	return resp, nil
}

func (d *Dispatcher) evaluate(ctx context.Context, req EvaluationRequest) (*EvaluationResponse, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	switch req.Mode {
	case ModeCompare:
		if req.Compare == nil {
			return nil, &ConfigMissingError{Mode: req.Mode}
		}
		result, err := RunCompare(ctx, d.newClient(d.config.ResolveLLM(req.LLM)), d.detectors, *req.Compare)
		if err != nil {
			return nil, err
		}
		return &EvaluationResponse{Mode: req.Mode, CompareResult: result}, nil

	case ModeJury:
		if req.Jury == nil {
			return nil, &ConfigMissingError{Mode: req.Mode}
		}
		result, err := RunJury(ctx, d.newClient(d.config.ResolveLLM(req.LLM)), d.detectors, *req.Jury)
		if err != nil {
			return nil, err
		}
		return &EvaluationResponse{Mode: req.Mode, JuryResult: result}, nil

	default:
		return nil, &UnsupportedModeError{Mode: req.Mode}
	}
}
