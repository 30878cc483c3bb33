package bunstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/xraph/prospect"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate primary key.
const uniqueViolation = "23505"

// storeErr translates driver errors into prospect sentinels. Anything it
// does not recognise is wrapped with op for the logs.
func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return prospect.ErrBusinessNotFound
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return prospect.ErrBusinessExists
	}
	return fmt.Errorf("prospect/bun: %s: %w", op, err)
}
