package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE of a rejected duplicate key.
const uniqueViolation = "23505"

// Classify maps a database error to the error taxonomy of the core: a unique
// violation becomes errs.ErrDuplicateWrite for key, anything else errs.ErrConnectivity.
func Classify(resource string, key any, err error) error {
	if err == nil {
		return nil
	}

	if IsUniqueViolation(err) {
		return errs.NewDuplicateWriteErrorWithCause(resource, key, err)
	}

	return errs.NewConnectivityErrorWithCause(resource, err)
}

// ClassifyScan maps an error returned while scanning a result row. A value that does
// not convert into its destination is errs.ErrValueIsInvalid; a transport failure
// surfacing through the scan stays errs.ErrConnectivity.
func ClassifyScan(resource string, err error) error {
	if err == nil {
		return nil
	}

	if isTransportFailure(err) {
		return errs.NewConnectivityErrorWithCause(resource, err)
	}

	return errs.NewValueIsInvalidErrorWithCause(resource+" row", err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint rejection.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isTransportFailure(err error) bool {
	var (
		pgErr      *pgconn.PgError
		connectErr *pgconn.ConnectError
		netErr     net.Error
	)

	return errors.As(err, &pgErr) ||
		errors.As(err, &connectErr) ||
		errors.As(err, &netErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
