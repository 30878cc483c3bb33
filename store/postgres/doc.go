// Package postgres implements the Prospect store using pgx/v5 with raw SQL.
// Contacts are stored as JSONB; progress writes are guarded by the
// version column. Schema changes ship as embedded SQL migrations.
package postgres
