// Package livepush implements the websocket hub behind ports.LivePusher.
//
// Clients connect with a bearer token, land in their per-user and per-role
// rooms, and may additionally track individual deliveries and orders. Every
// push is fire-and-forget: the hub never blocks a business operation on a
// slow or absent client.
package livepush
