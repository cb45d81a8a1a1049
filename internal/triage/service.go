package triage

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

var tracer = otel.Tracer("github.com/linnemanlabs/pulse/internal/triage")

// Notifier announces assessments at or above its threshold category.
type Notifier interface {
	Send(ctx context.Context, a *Assessment) error
	Threshold() Category
}

// ServiceHooks are optional callbacks fired by the Service. Nil fields are skipped.
type ServiceHooks struct {
	OnAssess func(c Category, v VitalSigns)
	OnNotify func(c Category, err error)
}

// Service is the business boundary for triage operations.
type Service struct {
	logger   log.Logger
	hooks    ServiceHooks
	notifier Notifier
	wg       sync.WaitGroup
}

// NewService creates a new triage service. notifier may be nil.
func NewService(logger log.Logger, hooks ServiceHooks, notifier Notifier) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		logger:   logger,
		hooks:    hooks,
		notifier: notifier,
	}
}

// Assess classifies v and wraps the result in an Assessment.
func (s *Service) Assess(ctx context.Context, v VitalSigns) *Assessment {
	id := ulid.Make().String()

	ctx, span := tracer.Start(ctx, "triage.Assess", trace.WithAttributes(
		attribute.String("pulse.triage.id", id),
	))
	defer span.End()

	a := &Assessment{
		ID:         id,
		Vitals:     v,
		Result:     Classify(v),
		AssessedAt: time.Now(),
	}

	span.SetAttributes(attribute.String("pulse.triage.category", a.Result.Category.String()))

	s.logger.Info(ctx, "assessment complete",
		"assessment_id", id,
		"category", a.Result.Category.String(),
		"heart_rate", v.HeartRate,
		"oxygen", v.Oxygen,
		"pain_level", v.PainLevel,
		"temperature", v.Temperature,
	)

	if s.hooks.OnAssess != nil {
		s.hooks.OnAssess(a.Result.Category, v)
	}

	if s.notifier != nil && a.Result.Category.Severity() >= s.notifier.Threshold().Severity() {
		// copy so the caller is free to mutate what we return
		cp := *a
		s.wg.Add(1)
		go s.notify(context.WithoutCancel(ctx), &cp)
	}

	return a
}

// Wait blocks until in-flight notifications have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) notify(ctx context.Context, a *Assessment) {
	defer s.wg.Done()

	err := s.notifier.Send(ctx, a)
	if err != nil {
		s.logger.Error(ctx, err, "failed to send notification",
			"assessment_id", a.ID,
			"category", a.Result.Category.String(),
		)
	}
	if s.hooks.OnNotify != nil {
		s.hooks.OnNotify(a.Result.Category, err)
	}
}
