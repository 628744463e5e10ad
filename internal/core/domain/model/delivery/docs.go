// Package delivery models the delivery aggregate: one agent's trip for one
// order, with a strictly sequential status machine and the agent's live
// position while the trip is active.
package delivery
