package utils

import (
	"context"
	"time"

	"studiobook-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("business_event", event),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Info("Business event occurred", allFields...)
}

func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("security_event", event),
		zap.String("severity", severity),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Warn("Security event detected", allFields...)
}
