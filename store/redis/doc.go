// Package redis implements store.Store on Redis. Each business is a hash at
// prospect:business:{fein}; creates and progress writes run inside WATCH
// transactions so a concurrent writer aborts the slower one.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	if err := s.Ping(ctx); err != nil { ... }
package redis
