// Package business defines the Business entity, its workflow statuses, and
// the persistence contract every store backend implements.
package business
