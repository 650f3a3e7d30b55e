package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// ErrUnavailable signals that the datastore could not be reached at all, as
// opposed to a query that ran and failed. The boundary maps it to 503.
var ErrUnavailable = errors.New("datastore unavailable")

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func checkRowsAffected(result sql.Result) (int64, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected, nil
}

// translateError rewrites connection-level failures into ErrUnavailable and
// passes everything else through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" { // connection exception
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
