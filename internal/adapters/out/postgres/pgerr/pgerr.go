// Package pgerr classifies Postgres failures into the engine's error kinds.
package pgerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"prepcenter/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the engine reacts to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	QueryCanceled        = "57014"
	TooManyConnections   = "53300"
	AdminShutdown        = "57P01"
	CrashShutdown        = "57P02"
	CannotConnectNow     = "57P03"

	// connectionExceptionClass covers every 08xxx code.
	connectionExceptionClass = "08"
)

// Translate maps err to a ConflictError or TransientStoreError when Postgres reports
// a unique violation, contention or an unreachable server. Any other error is
// returned unchanged.
func Translate(op, entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if connectionLost(err) {
		return errs.NewTransientStoreError(op, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case UniqueViolation:
		return errs.NewConflictErrorWithCause(entity, id, errors.New(pgErr.ConstraintName))
	case SerializationFailure, DeadlockDetected, LockNotAvailable, QueryCanceled,
		TooManyConnections, AdminShutdown, CrashShutdown, CannotConnectNow:
		return errs.NewTransientStoreError(op, err)
	}
	if strings.HasPrefix(pgErr.Code, connectionExceptionClass) {
		return errs.NewTransientStoreError(op, err)
	}
	return err
}

// connectionLost reports failures below the SQL layer: the server could not be
// reached, the connection dropped, or the caller's deadline ran out first.
func connectionLost(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
