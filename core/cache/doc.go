// Package cache provides the lookup cache used for remote catalog details.
//
// Two backends implement Store: Memory (a size-bounded LRU from hashicorp/golang-lru with
// lazy per-entry expiry) and Redis (go-redis, shared across instances). New selects one
// from Config.Driver.
package cache
