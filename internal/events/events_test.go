package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CollectsScopedEvents(t *testing.T) {
	t.Cleanup(func() { SetCustomEmitter(nil) })
	SetCustomEmitter(nil)

	var rec Recorder
	ctx := rec.Bind(WithSession(context.Background(), "sess-1"))

	Emit(ctx, GenerationProgress, NewInfo(StageGeneratingPR, "Gerando documento técnico..."))
	Emit(ctx, GenerationDone, NewSuccess(StageCompleted, "Concluído"))

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, StageGeneratingPR, got[0].Stage)
	assert.Equal(t, "sess-1", got[0].SessionKey)
	assert.Equal(t, EventSuccess, got[1].Type)
	assert.NotEmpty(t, got[1].ID)
}

func TestSetCustomEmitter_AlsoDeliversToSink(t *testing.T) {
	t.Cleanup(func() { SetCustomEmitter(nil) })

	var names []string
	SetCustomEmitter(func(ctx context.Context, name string, evt ProgressEvent) {
		names = append(names, name+":"+evt.SessionKey)
	})

	var rec Recorder
	ctx := rec.Bind(WithSession(context.Background(), "s"))
	Emit(ctx, GenerationProgress, NewWarn(StageSaving, "x"))

	assert.Equal(t, []string{GenerationProgress + ":s"}, names)
	assert.Len(t, rec.Events(), 1)
}

func TestEmit_WithoutSinkIsNoop(t *testing.T) {
	SetCustomEmitter(nil)
	assert.NotPanics(t, func() {
		Emit(context.Background(), GenerationProgress, NewError(StageFailed, "x"))
	})
}

func TestWithSession_IgnoresBlank(t *testing.T) {
	ctx := WithSession(context.Background(), "  ")
	assert.Equal(t, "", SessionFromContext(ctx))
}
