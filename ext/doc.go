// Package ext defines the extension system for Prospect.
//
// Extensions are notified of workflow events and can react to them:
// recording metrics, notifying a CRM, kicking off a sales handoff, etc.
// Each hook is a separate interface so extensions opt in only to the
// events they care about.
//
// # Implementing an Extension
//
//	type SalesHandoff struct{}
//
//	func (e *SalesHandoff) Name() string { return "sales-handoff" }
//
//	func (e *SalesHandoff) OnBusinessProgressed(ctx context.Context, b *business.Business, tr *workflow.Transition, _ time.Duration) error {
//	    if tr.To == business.StatusSalesApproved {
//	        return notifySales(ctx, b)
//	    }
//	    return nil
//	}
//
// # Hooks
//
//   - [BusinessCreated]: a business entered the workflow
//   - [BusinessProgressed]: a transition was persisted
//   - [ProgressRejected]: a progress request failed
//   - [DealClosed]: a business reached Won or Lost
//   - [Shutdown]: the engine is shutting down
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
