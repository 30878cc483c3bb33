// Package sqlite implements store.Store on database/sql with the
// mattn/go-sqlite3 driver. Suitable for embedded deployments, CLI tools and
// single-node installs.
//
// Contacts are stored as JSON text and timestamps as RFC 3339 text. The
// store opens a single connection so writers serialise inside the process
// instead of failing with SQLITE_BUSY.
//
//	s, _ := sqlite.New(ctx, "file:prospect.db?_foreign_keys=on")
//	defer s.Close()
//	s.Migrate(ctx)
package sqlite
