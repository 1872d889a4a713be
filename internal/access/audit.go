// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// AuditMode controls which decisions are logged.
type AuditMode string

// Audit logging modes.
const (
	// AuditDenialsOnly logs only denied decisions (sync).
	AuditDenialsOnly AuditMode = "denials_only"

	// AuditAll logs everything: denials sync, grants async.
	AuditAll AuditMode = "all"
)

// auditChannelFull counts grant entries dropped because the async
// channel was full. Denials are never dropped.
var auditChannelFull = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vendara_access_audit_channel_full_total",
	Help: "Total number of audit entries dropped due to a full channel",
})

// auditChannelSize is the buffer for async grant entries.
const auditChannelSize = 256

// AuditEntry records one access decision.
type AuditEntry struct {
	Username   string
	Role       rbac.Role
	Check      string
	Granted    bool
	Reason     string
	DurationUS int64
	Timestamp  time.Time
}

// AuditLogger writes access decisions to structured logs. Denials are
// written synchronously on the caller's goroutine; grants (in AuditAll
// mode) go through a buffered channel drained by a background worker so
// the hot grant path never blocks on logging.
type AuditLogger struct {
	mode   AuditMode
	logger *slog.Logger

	ch        chan AuditEntry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAuditLogger creates an AuditLogger. A nil logger defaults to
// slog.Default(). Call Close to drain the async channel on shutdown.
func NewAuditLogger(mode AuditMode, logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	a := &AuditLogger{
		mode:   mode,
		logger: logger,
		ch:     make(chan AuditEntry, auditChannelSize),
	}
	a.wg.Add(1)
	go a.drain()
	return a
}

// Log routes an entry based on its outcome and the configured mode.
func (a *AuditLogger) Log(ctx context.Context, entry AuditEntry) {
	if !entry.Granted {
		a.write(ctx, entry)
		return
	}
	if a.mode != AuditAll {
		return
	}
	select {
	case a.ch <- entry:
	default:
		auditChannelFull.Inc()
	}
}

// Close stops the worker after draining pending entries.
func (a *AuditLogger) Close() {
	a.closeOnce.Do(func() {
		close(a.ch)
	})
	a.wg.Wait()
}

func (a *AuditLogger) drain() {
	defer a.wg.Done()
	for entry := range a.ch {
		a.write(context.Background(), entry)
	}
}

func (a *AuditLogger) write(ctx context.Context, entry AuditEntry) {
	level := slog.LevelInfo
	msg := "access granted"
	if !entry.Granted {
		level = slog.LevelWarn
		msg = "access denied"
	}
	a.logger.LogAttrs(ctx, level, msg,
		slog.String("username", entry.Username),
		slog.String("role", string(entry.Role)),
		slog.String("check", entry.Check),
		slog.Bool("granted", entry.Granted),
		slog.String("reason", entry.Reason),
		slog.Int64("duration_us", entry.DurationUS),
		slog.Time("timestamp", entry.Timestamp),
	)
}

// auditDecision records a composite decision if auditing is enabled.
func (e *Engine) auditDecision(ctx context.Context, user identity.Identity, check string, res CheckResult, elapsed time.Duration) {
	if e.audit == nil {
		return
	}
	e.audit.Log(ctx, AuditEntry{
		Username:   user.Username,
		Role:       user.Role,
		Check:      check,
		Granted:    res.Granted(),
		Reason:     res.Reason,
		DurationUS: elapsed.Microseconds(),
		Timestamp:  time.Now(),
	})
}
