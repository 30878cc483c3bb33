// Package engine is the Prospect workflow engine. It wires a business
// store, the workflow state machine, the transition middleware chain and
// the extension registry together, and exposes the three operations the
// HTTP layer calls: Create, Progress and GetStatus.
//
// Every operation is a single-record read-modify-write. Progress persists
// through business.Store.UpdateBusiness with the version it read, so a
// concurrent writer makes it fail with prospect.ErrVersionConflict instead
// of silently overwriting. Conflicts are returned, never retried: the
// competing write may have moved the business to a stage where the same
// input means something else.
package engine
