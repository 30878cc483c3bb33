// Package workflow implements the qualification state machine.
//
// A business moves through a fixed graph of stages:
//
//	New ──► Market Approved ──► Sales Approved ──► Won
//	 │                                  └────────► Lost
//	 └────► Market Declined
//
// Each stage demands exactly the input needed to pick the next branch:
// an industry in New, a complete contact in Market Approved, and a deal
// outcome in Sales Approved. Market Declined, Won and Lost are terminal.
//
// The Machine is pure: it mutates the business it is handed and returns a
// Transition, but never touches a store. Persistence is the engine's job.
package workflow
