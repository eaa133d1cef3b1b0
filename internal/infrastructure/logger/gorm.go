package logger

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const maxLoggedSQL = 2048

// QueryStats counts statements seen by a GormLogger since start. Copies made
// by LogMode share the same counters.
type QueryStats struct {
	queries atomic.Int64
	slow    atomic.Int64
	failed  atomic.Int64
}

// Snapshot returns the total, slow and failed statement counts
func (s *QueryStats) Snapshot() (total, slow, failed int64) {
	return s.queries.Load(), s.slow.Load(), s.failed.Load()
}

// GormLogger writes gorm statements to zap with the request's correlation
// fields. Statements are logged at debug, slow ones at warn.
type GormLogger struct {
	log          *zap.Logger
	logLevel     gormlogger.LogLevel
	slow         time.Duration
	keepNotFound bool
	hideParams   bool
	stats        *QueryStats
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is slow; zero
// disables slow logging
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slow = d }
}

// WithIgnoreRecordNotFoundError drops ErrRecordNotFound from the error log,
// true by default since repositories map it to a domain error
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.keepNotFound = !ignore }
}

// WithParameterizedQueries logs statements with placeholders instead of bound
// values. Production uses it so password hashes and tokens stay out of logs.
func WithParameterizedQueries(on bool) GormLoggerOption {
	return func(l *GormLogger) { l.hideParams = on }
}

func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		log:      base.Named("gorm"),
		logLevel: level,
		slow:     200 * time.Millisecond,
		stats:    &QueryStats{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stats exposes the statement counters
func (l *GormLogger) Stats() *QueryStats { return l.stats }

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.logLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, at gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.logLevel < at {
		return
	}
	Enrich(ctx, l.log).Sugar().Logf(lvl, msg, data...)
}

// ParamsFilter is called by gorm before rendering bound values into the
// logged statement
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.hideParams {
		return sql, nil
	}
	return sql, params
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	l.stats.queries.Add(1)

	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)
	isSlow := l.slow > 0 && elapsed > l.slow
	switch {
	case err != nil && !notFound:
		l.stats.failed.Add(1)
	case isSlow:
		l.stats.slow.Add(1)
	}
	if l.logLevel <= gormlogger.Silent {
		return
	}

	var lvl zapcore.Level
	var msg string
	switch {
	case err != nil && (!notFound || l.keepNotFound):
		if l.logLevel < gormlogger.Error {
			return
		}
		lvl, msg = zapcore.ErrorLevel, "SQL Error"
	case isSlow:
		if l.logLevel < gormlogger.Warn {
			return
		}
		lvl, msg = zapcore.WarnLevel, "SQL Slow"
	default:
		if notFound || l.logLevel < gormlogger.Info {
			return
		}
		lvl, msg = zapcore.DebugLevel, "SQL Query"
	}

	sql, rows := fc()
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	fields := []zap.Field{
		zap.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000),
		zap.String("sql", sql),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if isSlow {
		fields = append(fields, zap.Duration("threshold", l.slow))
	}
	if lvl == zapcore.ErrorLevel {
		fields = append(fields, zap.Error(err))
	}
	Enrich(ctx, l.log).Log(lvl, msg, fields...)
}

// MapGormLogLevel maps the application log level to gorm's
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
