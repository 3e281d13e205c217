// Package observability records board activity and derives reports from it.
// Mutations are appended to a JSON Lines event log; metrics and alerts are
// computed on demand from that log and from the current column counts.
// The diagnostics logger used across the application is built here too.
package observability
