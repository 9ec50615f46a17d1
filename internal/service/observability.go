package service

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent describes one finished schedule operation: a calendar build,
// an import or a reschedule.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs each event as one "schedule_op" record. Fields
// are written in key order so the same operation always logs the same line
// shape.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, 4+len(keys))
	attrs = append(attrs,
		slog.String("op", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "schedule_op", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// useCase times a single operation. Callers fill Fields as facts become known
// and call end from a deferred func with the named error result.
type useCase struct {
	observer UseCaseObserver
	name     string
	started  time.Time
	Fields   map[string]any
}

func startUseCase(observer UseCaseObserver, name string) *useCase {
	return &useCase{
		observer: observer,
		name:     name,
		started:  time.Now().UTC(),
		Fields:   map[string]any{},
	}
}

func (u *useCase) end(ctx context.Context, err error) {
	u.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      u.name,
		StartedAt: u.started,
		Duration:  time.Since(u.started),
		Success:   err == nil,
		Err:       err,
		Fields:    u.Fields,
	})
}
