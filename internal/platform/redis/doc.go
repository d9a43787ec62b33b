// Package redis provides an optional Redis-backed read cache for tasks.
//
// Cache misses are reported as (nil, nil) so callers can fall through to the
// database without inspecting redis.Nil themselves.
package redis
