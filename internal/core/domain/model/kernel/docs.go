// Package kernel contains shared value objects used by every aggregate in the
// delivery domain: validated UUIDs for identity and WGS84 GeoPoints for
// positions and great-circle distance. Types here are immutable; zero values
// are invalid and must be created through constructors.
package kernel
