package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New. Level, when empty, is info in production and debug
// otherwise. Output defaults to stdout.
type Options struct {
	Service    string
	Production bool
	Level      string
	Output     io.Writer
}

type zapLogger struct {
	log *zap.Logger
}

// New builds a JSON logger tagged with the service name. Production loggers sample
// repeated entries.
func New(opts Options) (Logger, error) {
	level := zapcore.DebugLevel
	encoder := zap.NewDevelopmentEncoderConfig()
	if opts.Production {
		level = zapcore.InfoLevel
		encoder = zap.NewProductionEncoderConfig()
	}
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeDuration = zapcore.StringDurationEncoder

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoder), zapcore.Lock(zapcore.AddSync(out)), level)
	if opts.Production {
		core = zapcore.NewSamplerWithOptions(core, 1, 100, 0)
	}
	return &zapLogger{log: zap.New(core).With(zap.String("service", opts.Service))}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zapLogger{log: zap.NewNop()}
}

func (z *zapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	z.write(ctx, zapcore.DebugLevel, msg, fields)
}

func (z *zapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	z.write(ctx, zapcore.InfoLevel, msg, fields)
}

func (z *zapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	z.write(ctx, zapcore.WarnLevel, msg, fields)
}

func (z *zapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	z.write(ctx, zapcore.ErrorLevel, msg, fields)
}

func (z *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{log: z.log.With(toZap(fields, 0)...)}
}

// write converts fields, resolving Lazy ones, only when the level is enabled.
func (z *zapLogger) write(ctx context.Context, level zapcore.Level, msg string, fields []Field) {
	ce := z.log.Check(level, msg)
	if ce == nil {
		return
	}
	out := toZap(fields, 2)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out = append(out,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	ce.Write(out...)
}

func toZap(fields []Field, extra int) []zap.Field {
	if len(fields)+extra == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields)+extra)
	for _, f := range fields {
		out = append(out, zapField(f))
	}
	return out
}

func zapField(f Field) zap.Field {
	val := f.Value
	if fn, ok := val.(func() any); ok {
		val = fn()
	}
	switch v := val.(type) {
	case string:
		if f.Kind == KindString {
			return zap.String(f.Key, v)
		}
	case int:
		if f.Kind == KindInt {
			return zap.Int(f.Key, v)
		}
	case int64:
		if f.Kind == KindInt64 {
			return zap.Int64(f.Key, v)
		}
	case bool:
		if f.Kind == KindBool {
			return zap.Bool(f.Key, v)
		}
	case time.Duration:
		if f.Kind == KindDuration {
			return zap.Duration(f.Key, v)
		}
	case error:
		if f.Kind == KindError {
			return zap.NamedError(f.Key, v)
		}
	}
	return zap.Any(f.Key, val)
}
