// Package triage classifies patient vital signs into a severity category.
// It defines the pure Classify routine, the plain-text report, and the
// Service that wraps classifications with tracing, metrics and notification.
package triage
