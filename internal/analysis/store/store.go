// Package store persists analysis reports. The memory store is the default;
// redis and postgres back distributed and durable deployments respectively.
package store

import "clausecheck/pkg/platform/sentinel"

// ErrNotFound is returned when a report does not exist or has expired.
var ErrNotFound = sentinel.ErrNotFound
