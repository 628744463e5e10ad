// Package services contains stateless domain services that operate across
// aggregates, currently the nearest-agent selection policy.
package services
