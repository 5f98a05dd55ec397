// Package geo resolves IP geolocation through the ip-api.com JSON API.
//
// Private and otherwise unroutable addresses are rejected locally before
// any request is made, since the provider cannot locate them anyway.
package geo
