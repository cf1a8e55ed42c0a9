package vintage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitResolverCreated(_ *testing.T) {
	// Should not panic
	emitResolverCreated(context.Background(), "TestType", 3)
}

func TestEmitResolveStart(_ *testing.T) {
	emitResolveStart(context.Background(), "application/json", "TestType")
}

func TestEmitResolveComplete_Success(_ *testing.T) {
	emitResolveComplete(context.Background(), "application/json", "TestType", "v1", 2, 100*time.Millisecond, nil)
}

func TestEmitResolveComplete_Error(_ *testing.T) {
	emitResolveComplete(context.Background(), "application/json", "TestType", "", 3, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitProcessorCreated(_ *testing.T) {
	emitProcessorCreated(context.Background(), "application/json", "TestType")
}

func TestEmitDecodeStart(_ *testing.T) {
	emitDecodeStart(context.Background(), "application/json", "TestType")
}

func TestEmitDecodeComplete_Success(_ *testing.T) {
	emitDecodeComplete(context.Background(), "application/json", "TestType", 100*time.Millisecond, 4, nil)
}

func TestEmitDecodeComplete_Error(_ *testing.T) {
	emitDecodeComplete(context.Background(), "application/json", "TestType", 100*time.Millisecond, 0, errors.New("test error"))
}

func TestEmitEncodeStart(_ *testing.T) {
	emitEncodeStart(context.Background(), "application/json", "TestType")
}

func TestEmitEncodeComplete_Success(_ *testing.T) {
	emitEncodeComplete(context.Background(), "application/json", "TestType", 512, 100*time.Millisecond, nil)
}

func TestEmitEncodeComplete_Error(_ *testing.T) {
	emitEncodeComplete(context.Background(), "application/json", "TestType", 0, 100*time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalResolverCreated", SignalResolverCreated},
		{"SignalResolveStart", SignalResolveStart},
		{"SignalResolveComplete", SignalResolveComplete},
		{"SignalProcessorCreated", SignalProcessorCreated},
		{"SignalDecodeStart", SignalDecodeStart},
		{"SignalDecodeComplete", SignalDecodeComplete},
		{"SignalEncodeStart", SignalEncodeStart},
		{"SignalEncodeComplete", SignalEncodeComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyTypeName", KeyTypeName},
		{"KeyTag", KeyTag},
		{"KeyRegistrations", KeyRegistrations},
		{"KeyAttempts", KeyAttempts},
		{"KeyResolvedCount", KeyResolvedCount},
		{"KeySize", KeySize},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
