// Package notification models persisted in-app messages written alongside
// delivery state changes.
package notification
