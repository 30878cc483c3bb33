// Package mongo implements store.Store on the official MongoDB Go driver
// (v2). Businesses live in the "businesses" collection keyed by FEIN
// (_id); progress writes filter on the stored version so a concurrent
// writer matches nothing and gets prospect.ErrVersionConflict.
//
//	s, _ := mongo.Connect(ctx, "mongodb://localhost:27017", "prospect")
//	defer s.Close()
//	s.Migrate(ctx)
package mongo
