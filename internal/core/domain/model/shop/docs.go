// Package shop models the shop aggregate as dispatch sees it: an identity,
// its vendor and a pickup location.
package shop
