// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vendara/vendara/internal/access"
	"github.com/vendara/vendara/internal/rbac"
)

func auditEntry(granted bool) access.AuditEntry {
	return access.AuditEntry{
		Username:   "shiftlead",
		Role:       rbac.RoleModerator,
		Check:      "can_access",
		Granted:    granted,
		Reason:     "test",
		DurationUS: 42,
		Timestamp:  time.Now(),
	}
}

func TestAuditLogger_DenialsAreSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	logger := access.NewAuditLogger(access.AuditDenialsOnly, slog.New(slog.NewJSONHandler(&buf, nil)))
	defer logger.Close()

	logger.Log(context.Background(), auditEntry(false))

	// Denials are written on the caller's goroutine, visible immediately
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "access denied", entry["msg"])
	assert.Equal(t, "shiftlead", entry["username"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestAuditLogger_GrantsSkippedInDenialsOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	logger := access.NewAuditLogger(access.AuditDenialsOnly, slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.Log(context.Background(), auditEntry(true))
	logger.Close()

	assert.Zero(t, buf.Len(), "grants are not logged in denials_only mode")
}

func TestAuditLogger_GrantsAsyncInAllMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	logger := access.NewAuditLogger(access.AuditAll, slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.Log(context.Background(), auditEntry(true))
	logger.Log(context.Background(), auditEntry(true))

	// Close drains the channel before returning
	logger.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "access granted", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestAuditLogger_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := access.NewAuditLogger(access.AuditAll, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	logger.Close()
	logger.Close()
}

func TestEngineAuditsDecisions(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	audit := access.NewAuditLogger(access.AuditAll, slog.New(slog.NewJSONHandler(&buf, nil)))
	engine := access.NewEngine(nil, access.WithAudit(audit))

	user := testUser(rbac.RoleUser)
	engine.CanAccess(context.Background(), user, access.Requirement{MinRole: rbac.RoleAdmin})
	audit.Close()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "access denied", entry["msg"])
	assert.Equal(t, "can_access", entry["check"])
	assert.Equal(t, false, entry["granted"])
}
