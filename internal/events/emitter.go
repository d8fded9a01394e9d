package events

import (
	"context"
	"sync"

	"briefy/internal/logger"
)

// Emit publishes a progress event. It always forwards to the sink bound to
// ctx, if any; EnableLoggerEmitter and SetCustomEmitter add a process-wide
// destination on top.
var Emit = func(ctx context.Context, name string, evt ProgressEvent) {
	deliver(ctx, name, evt)
}

// EnableLoggerEmitter writes every event to log in addition to the context
// sink.
func EnableLoggerEmitter(log *logger.Logger) {
	log = log.With("component", "events")
	Emit = func(ctx context.Context, name string, evt ProgressEvent) {
		evt = scope(ctx, evt)
		logEvent(log, name, evt)
		deliver(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt ProgressEvent)) {
	if f == nil {
		Emit = deliver
		return
	}
	Emit = func(ctx context.Context, name string, evt ProgressEvent) {
		evt = scope(ctx, evt)
		f(ctx, name, evt)
		deliver(ctx, name, evt)
	}
}

func scope(ctx context.Context, evt ProgressEvent) ProgressEvent {
	if evt.SessionKey == "" {
		evt.SessionKey = SessionFromContext(ctx)
	}
	return evt
}

func logEvent(log *logger.Logger, name string, evt ProgressEvent) {
	kv := []interface{}{"event", name, "stage", evt.Stage, "session", evt.SessionKey}
	switch evt.Type {
	case EventError:
		log.Error(evt.Message, kv...)
	case EventWarn:
		log.Warn(evt.Message, kv...)
	default:
		log.Info(evt.Message, kv...)
	}
}

// Sink receives the events emitted under a context.
type Sink func(name string, evt ProgressEvent)

func WithSink(ctx context.Context, sink Sink) context.Context {
	if sink == nil {
		return ctx
	}
	return context.WithValue(ctx, sinkContextKey, sink)
}

func deliver(ctx context.Context, name string, evt ProgressEvent) {
	if ctx == nil {
		return
	}
	if sink, ok := ctx.Value(sinkContextKey).(Sink); ok {
		sink(name, scope(ctx, evt))
	}
}

// Recorder collects events for one request so they can be returned with
// the response.
type Recorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *Recorder) Bind(ctx context.Context) context.Context {
	return WithSink(ctx, func(_ string, evt ProgressEvent) {
		r.mu.Lock()
		r.events = append(r.events, evt)
		r.mu.Unlock()
	})
}

func (r *Recorder) Events() []ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ProgressEvent, len(r.events))
	copy(out, r.events)
	return out
}
