package redis

// Redis key naming conventions for prospect data.
// All keys are prefixed with "prospect:" to avoid collisions.

const keyPrefix = "prospect:"

// businessKey returns the hash key for a business: prospect:business:{fein}
func businessKey(fein string) string { return keyPrefix + "business:" + fein }
