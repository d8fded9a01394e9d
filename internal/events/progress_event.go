package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Stage names the pipeline step a progress event belongs to.
type Stage string

const (
	StagePreparing           Stage = "preparing"
	StageGeneratingPR        Stage = "generating_pr"
	StageGeneratingFlowchart Stage = "generating_flowchart"
	StageGeneratingTasks     Stage = "generating_tasks"
	StageAnalyzingVideo      Stage = "analyzing_video"
	StageAnalyzingMaterial   Stage = "analyzing_material"
	StageSaving              Stage = "saving"
	StageCompleted           Stage = "completed"
	StageFailed              Stage = "failed"
)

const (
	GenerationProgress = "events:generation:progress"
	GenerationDone     = "events:generation:done"
)

// ProgressEvent is a short human-readable status update for a progress
// indicator.
type ProgressEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Stage      Stage             `json:"stage"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const (
	sessionContextKey contextKey = "briefy/events/session"
	sinkContextKey    contextKey = "briefy/events/sink"
)

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func NewProgress(eventType EventType, stage Stage, message string) ProgressEvent {
	return ProgressEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewInfo(stage Stage, message string) ProgressEvent {
	return NewProgress(EventInfo, stage, message)
}

func NewWarn(stage Stage, message string) ProgressEvent {
	return NewProgress(EventWarn, stage, message)
}

func NewError(stage Stage, message string) ProgressEvent {
	return NewProgress(EventError, stage, message)
}

func NewSuccess(stage Stage, message string) ProgressEvent {
	return NewProgress(EventSuccess, stage, message)
}
