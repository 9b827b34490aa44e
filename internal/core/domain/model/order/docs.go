// Package order implements the Order aggregate of the purchasing-agent shop:
// validation of a proposed order, human-readable order number generation, and
// the lifecycle state machine from payment to completion or refund.
//
// The package includes:
//   - Order: the aggregate root owning customer, customs and shipping data and its items
//   - Item: an order line (product reference, quantity, unit price)
//   - Status: the state machine PAID -> SHIPPED -> DONE, with REFUNDED reachable from PAID or SHIPPED
//   - Number: the ORD-YYMMDD-NNN identifier derived from a KST date and a daily sequence
//   - Validate: collect-all validation of an Input, never short-circuited
//
// Key business rules:
//   - An Order is never constructed from an invalid Input
//   - The order number is assigned once, at construction
//   - Complete and Refund are idempotent in their own target state; every other
//     illegal transition fails with an InvalidTransitionError
//   - Totals are derived from the items on every call and never stored
//
// The package performs no I/O. Persistence, sequence allocation and event
// delivery are provided by the caller through ports.
package order
