package logger

import (
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// NewPgxTracer returns a pgx query tracer that writes SQL through zerolog.
func NewPgxTracer(base zerolog.Logger) *tracelog.TraceLog {
	sqlLogger := base.With().Str("component", "pgx").Logger()
	return &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(sqlLogger),
		LogLevel: PgxTraceLogLevel(zerolog.GlobalLevel()),
	}
}

// PgxTraceLogLevel converts a zerolog level to its pgx tracelog counterpart.
func PgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
