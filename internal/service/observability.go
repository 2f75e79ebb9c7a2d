package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/repsheet/internal/program"
)

// UseCaseEvent describes one finished program or library use case.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

func (e UseCaseEvent) Success() bool { return e.Err == nil }

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// fanout passes each event to every observer in order.
type fanout []UseCaseObserver

func (f fanout) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// combineObservers drops nil observers and returns the rest as one.
func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live fanout
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs events as text lines on w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger}
}

// ObserveUseCase logs at info on success, at warn when an edit was refused
// to keep the program shape valid, and at error otherwise. Fields are
// written in key order.
func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := []any{
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success(),
	}
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}

	level := slog.LevelInfo
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		level = slog.LevelError
		if program.IsInvariantViolation(event.Err) {
			level = slog.LevelWarn
		}
	}
	o.logger.Log(ctx, level, "service_use_case", attrs...)
}

// observe reports one finished use case. Defer it with a pointer to the
// named error result so the final error is seen.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	event := UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Fields:    fields,
	}
	if err != nil {
		event.Err = *err
	}
	obs.ObserveUseCase(ctx, event)
}
