// Package order models the customer order aggregate and its lifecycle state
// machine. The aggregate is the single authority for status transitions;
// both vendor-driven and delivery-driven actors mutate it only through its
// guarded methods.
package order
