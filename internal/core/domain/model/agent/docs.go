// Package agent models the delivery agent aggregate: availability, last
// reported position and the concurrent-load cap that assignment honours.
package agent
