// Package observability records xl invocations in an append-only JSON Lines
// history file, reads them back with simple filters and aggregates usage
// statistics from them.
package observability
