package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"nudge/config"
	deliverycontext "nudge/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormLogger(base, cfg).(*gormLogger), &buf
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_TraceFailureUsesScopedLogger(t *testing.T) {
	l, buf := newBufferedGormLogger(false)
	ctx, _ := deliverycontext.Scope(context.Background(), l.base, "req-9")

	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Query failed")
	assert.Contains(t, out, "request_id=req-9")
	assert.Contains(t, out, "boom")
}

func TestGormLogger_TraceSkipsNotFoundAndFastQueries(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), sqlFn, nil)

	assert.Empty(t, buf.String())
}

func TestGormLogger_TraceSlowQuery(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

	assert.Contains(t, buf.String(), "Slow query")
}

func TestGormLogger_DebugLogsEveryQuery(t *testing.T) {
	l, buf := newBufferedGormLogger(true)

	l.Trace(context.Background(), time.Now(), sqlFn, nil)

	assert.Contains(t, buf.String(), "SELECT 1")
}
