package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/marketplace/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	componentName string
	logger        *zap.Logger
}

// Cloud Logging parses a json line per record: keys below are the ones it recognizes.
func newGcloudEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		EncodeLevel:    encodeSeverity,
		TimeKey:        "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(string(SeverityDebug))
	case zapcore.InfoLevel:
		enc.AppendString(string(SeverityInfo))
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	default:
		enc.AppendString(string(SeverityError))
	}
}

func newGcloudLogger(componentName string) Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(newGcloudEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zapcore.DebugLevel,
	)
	return newStructuredLogger(componentName, zap.New(core))
}

func newStructuredLogger(componentName string, logger *zap.Logger) Logger {
	return structuredLogger{
		componentName: componentName,
		logger:        logger,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{
		zap.String("component", l.componentName),
		zap.Any("labels", map[string]string{"aggregate": traceLabel}),
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	msg := l.componentName + ":" + fmt.Sprintf(format, a...)

	if ce := l.logger.Check(toZapLevel(severity), msg); ce != nil {
		ce.Write(fields...)
	}
}

func toZapLevel(severity Severity) zapcore.Level {
	switch severity {
	case SeverityDebug:
		return zapcore.DebugLevel
	case SeverityInfo:
		return zapcore.InfoLevel
	case SeverityWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
