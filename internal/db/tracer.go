package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/pkg/logger"
	"github.com/yigit/eduadmin/internal/pkg/metrics"
)

// multiTracer fans pgx query callbacks out to several tracers, since
// ConnConfig only has a single Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	operation string
}

// metricsTracer records query duration and failures.
type metricsTracer struct {
	metrics *metrics.DatabaseMetrics
}

func (mt *metricsTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		at:        time.Now(),
		operation: queryOperation(data.SQL),
	})
}

func (mt *metricsTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	mt.metrics.RecordQuery(ctx, start.operation, time.Since(start.at), data.Err)
}

// queryOperation returns the leading SQL verb, e.g. SELECT or INSERT.
func queryOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(fields[0])
}

func newQueryTracer(base zerolog.Logger, dbMetrics *metrics.DatabaseMetrics) pgx.QueryTracer {
	tracers := []pgx.QueryTracer{&metricsTracer{metrics: dbMetrics}}

	if base.GetLevel() <= zerolog.DebugLevel {
		tracers = append(tracers, logger.NewPgxTracer(base))
	}

	if len(tracers) == 1 {
		return tracers[0]
	}
	return &multiTracer{tracers: tracers}
}
