package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/xraph/prospect/business"
)

const timeLayout = time.RFC3339Nano

// isNoRows returns true when err indicates no rows were found.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isDuplicateKey checks if a SQLite error is a primary key or unique
// constraint violation.
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// contactText encodes c for the TEXT column. A nil contact is stored as NULL.
func contactText(c *business.Contact) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func parseContact(ns sql.NullString) (*business.Contact, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var c business.Contact
	if err := json.Unmarshal([]byte(ns.String), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
