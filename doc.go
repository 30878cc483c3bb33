// Package prospect tracks businesses through a fixed sales-qualification
// workflow: creation, industry screening, contact capture, and deal closure.
//
// Prospect is designed as a library first. Import it, configure a store, and
// drive businesses through the workflow with the engine package; the api
// package exposes the same operations over HTTP.
//
// # Quick Start
//
//	eng, err := engine.New(memory.New(),
//	    engine.WithConfig(prospect.DefaultConfig()),
//	    engine.WithLogger(logger),
//	)
//	b, err := eng.Create(ctx, "123456789", "Acme")
//	res, err := eng.Progress(ctx, "123456789", workflow.Input{Industry: "restaurants"})
//
// # Architecture
//
// The workflow package holds the pure state machine. The engine package
// loads a business from a store, advances it through the machine inside a
// middleware chain, and persists the result with an optimistic version
// guard. Each backend under store/ implements business.Store.
package prospect
