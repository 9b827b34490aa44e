// Package kernel provides the shared domain primitives of the order service.
//
// The package includes:
//   - UUID: identifier value object assigned to persisted aggregates
//   - Money: a non-negative decimal amount used for unit prices and totals
//   - Clock: the time source aggregates use to stamp lifecycle transitions
//   - KST: the fixed Korea Standard Time zone every business date is taken in
//
// All values are immutable and safe for concurrent use.
package kernel
