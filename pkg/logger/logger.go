package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Checkout logging methods

// LogSessionCreated logs when a checkout session is created
func (l *Logger) LogSessionCreated(ctx context.Context, sessionID string) {
	l.Logger.InfoContext(ctx,
		"Checkout Session Created",
		slog.String("session_id", sessionID),
	)
}

// LogSessionReset logs when a checkout session is reset for a new booking
func (l *Logger) LogSessionReset(ctx context.Context, sessionID string) {
	l.Logger.InfoContext(ctx,
		"Checkout Session Reset",
		slog.String("session_id", sessionID),
	)
}

// LogStaleSelections logs ticket selections stripped because their type left the catalog
func (l *Logger) LogStaleSelections(ctx context.Context, sessionID string, ticketTypeIDs []int) {
	l.Logger.WarnContext(ctx,
		"Stale Ticket Selections Removed",
		slog.String("session_id", sessionID),
		slog.Any("ticket_type_ids", ticketTypeIDs),
	)
}

// LogSubmissionSucceeded logs a confirmed reservation submission
func (l *Logger) LogSubmissionSucceeded(ctx context.Context, sessionID string, reservationCount int) {
	l.Logger.InfoContext(ctx,
		"Reservation Submission Succeeded",
		slog.String("session_id", sessionID),
		slog.Int("reservation_count", reservationCount),
	)
}

// LogSubmissionFailed logs a failed reservation submission; the session stays retryable
func (l *Logger) LogSubmissionFailed(ctx context.Context, sessionID string, err error) {
	l.Logger.ErrorContext(ctx,
		"Reservation Submission Failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
