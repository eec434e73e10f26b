package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
	logger        *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	logger, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewExample()
	}
	return standardLogger{
		componentName: componentName,
		logger:        logger.Sugar().Named(componentName),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	switch severity {
	case SeverityDebug:
		l.logger.Debugw(msg, "aggregate", traceLabel)
	case SeverityInfo:
		l.logger.Infow(msg, "aggregate", traceLabel)
	case SeverityWarn:
		l.logger.Warnw(msg, "aggregate", traceLabel)
	default:
		l.logger.Errorw(msg, "aggregate", traceLabel)
	}
}
