package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
)

// Postgres error codes the repositories react to.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
	codeAdminShutdown        = "57P01"
)

// insertChunkRows keeps multi-row inserts well under the 65535 bind limit.
const insertChunkRows = 1000

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return string(pgErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func isCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}

// isTransient reports failures a caller may retry: lost connections,
// serialization conflicts, lock timeouts and cancelled statements.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	code := pqCode(err)
	if strings.HasPrefix(code, "08") {
		return true
	}
	switch code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled, codeAdminShutdown:
		return true
	}
	return false
}

// wrapStoreError wraps err with op and tags transient failures with
// scoring.ErrStoreUnavailable.
func wrapStoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, op)
	if isTransient(err) {
		return fmt.Errorf("%w: %w", scoring.ErrStoreUnavailable, wrapped)
	}
	return wrapped
}
