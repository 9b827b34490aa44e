// Package services provides domain services that orchestrate business operations
// which don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderFactory: validates a proposed order, allocates its number and builds the aggregate
//
// Domain services perform no persistence themselves; collaborators are
// injected through ports.
package services
