package vintage

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for resolution events.
var (
	SignalResolverCreated  = capitan.NewSignal("vintage.resolver.created", "Resolver instantiated")
	SignalResolveStart     = capitan.NewSignal("vintage.resolve.start", "Resolution beginning")
	SignalResolveComplete  = capitan.NewSignal("vintage.resolve.complete", "Resolution finished")
	SignalProcessorCreated = capitan.NewSignal("vintage.processor.created", "Processor instantiated")
	SignalDecodeStart      = capitan.NewSignal("vintage.decode.start", "Decode operation beginning")
	SignalDecodeComplete   = capitan.NewSignal("vintage.decode.complete", "Decode operation finished")
	SignalEncodeStart      = capitan.NewSignal("vintage.encode.start", "Encode operation beginning")
	SignalEncodeComplete   = capitan.NewSignal("vintage.encode.complete", "Encode operation finished")
)

// Keys for typed event data.
var (
	KeyContentType   = capitan.NewStringKey("content_type")
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeyTag           = capitan.NewStringKey("tag")
	KeyRegistrations = capitan.NewIntKey("registrations")
	KeyAttempts      = capitan.NewIntKey("attempts")
	KeyResolvedCount = capitan.NewIntKey("resolved_count")
	KeySize          = capitan.NewIntKey("size")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
)

// emitResolverCreated emits an event when a resolver is created.
func emitResolverCreated(ctx context.Context, typeName string, registrations int) {
	capitan.Emit(ctx, SignalResolverCreated,
		KeyTypeName.Field(typeName),
		KeyRegistrations.Field(registrations),
	)
}

// emitResolveStart emits an event when resolution begins.
func emitResolveStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalResolveStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitResolveComplete emits an event when resolution finishes.
// tag is the matched version, empty when nothing matched.
func emitResolveComplete(ctx context.Context, contentType, typeName, tag string, attempts int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyTag.Field(tag),
		KeyAttempts.Field(attempts),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalResolveComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalResolveComplete, fields...)
	}
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitDecodeStart emits an event when a record decode begins.
func emitDecodeStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitDecodeComplete emits an event when a record decode finishes.
func emitDecodeComplete(ctx context.Context, contentType, typeName string, duration time.Duration, resolved int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyResolvedCount.Field(resolved),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitEncodeStart emits an event when a record encode begins.
func emitEncodeStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitEncodeComplete emits an event when a record encode finishes.
func emitEncodeComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}
