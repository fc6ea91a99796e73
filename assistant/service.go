// Package assistant orchestrates sessions, prompt assembly, and model calls.
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/babynest/assistant/config"
	"github.com/babynest/assistant/domain"
	"github.com/babynest/assistant/genai"
	"github.com/babynest/assistant/prompt"
	"github.com/babynest/assistant/store"
)

// Service is the session-scoped conversational context manager.
type Service struct {
	store     store.Store
	model     genai.Generator
	assembler *prompt.Assembler
	cfg       *config.Config

	tracer        trace.Tracer
	modelCalls    metric.Int64Counter
	purgedTotal   metric.Int64Counter
	modelDuration metric.Float64Histogram
}

// New creates a new Service.
func New(st store.Store, model genai.Generator, assembler *prompt.Assembler, cfg *config.Config) *Service {
	meter := otel.Meter("assistant")
	modelCalls, _ := meter.Int64Counter("assistant.model_calls")
	purgedTotal, _ := meter.Int64Counter("assistant.sessions_purged")
	modelDuration, _ := meter.Float64Histogram("assistant.model_call_seconds")

	return &Service{
		store:         st,
		model:         model,
		assembler:     assembler,
		cfg:           cfg,
		tracer:        otel.Tracer("assistant"),
		modelCalls:    modelCalls,
		purgedTotal:   purgedTotal,
		modelDuration: modelDuration,
	}
}

// generate invokes the model inside a span and maps any provider failure to
// the uniform ErrModelUnavailable. Provider detail stays in the logs.
func (s *Service) generate(ctx context.Context, kind string, parts []genai.Part) (string, error) {
	ctx, span := s.tracer.Start(ctx, "model.generate",
		trace.WithAttributes(attribute.String("request.kind", kind)))
	defer span.End()

	start := time.Now()
	text, err := s.model.Generate(ctx, parts, genai.GenerationConfig{
		Temperature:    s.cfg.Temperature,
		SafetySettings: s.cfg.SafetySettings(),
	})
	s.modelDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("kind", kind)))
	s.modelCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("error", err != nil)))

	if err != nil {
		slog.Error("model call failed", "kind", kind, "error", err)
		span.RecordError(err)
		return "", domain.ErrModelUnavailable
	}
	return text, nil
}

// storeErr maps storage failures to the generic taxonomy. Known sentinels
// pass through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	slog.Error("storage operation failed", "op", op, "error", err)
	return domain.ErrStorageUnavailable
}
