package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetbuddy-go/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLog sends gorm output through logger.Logger. Failed queries are logged
// as internal errors, queries slower than slow as warnings and, at Info
// level, every query at debug.
type gormLog struct {
	log   logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLog(log logger.Logger, slow time.Duration) *gormLog {
	return &gormLog{log: log, level: gormlogger.Warn, slow: slow}
}

func (g *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLog) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Info("db: " + fmt.Sprintf(msg, args...))
	}
}

func (g *gormLog) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warn("db: " + fmt.Sprintf(msg, args...))
	}
}

func (g *gormLog) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Error("db: " + fmt.Sprintf(msg, args...))
	}
}

func (g *gormLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.InternalError("db: query failed", err, "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.Warn("db: slow query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds(), "threshold_ms", g.slow.Milliseconds())
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.log.Debug("db: query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}
