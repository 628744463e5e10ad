// Package events defines the broker topics and payloads the delivery core
// publishes. Payload field names are part of the wire contract with mobile
// and web clients.
package events
