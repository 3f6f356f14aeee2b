// Package api defines the request and response messages of the fairshare
// Connect services.
//
// Messages are plain Go structs serialized as JSON by Codec. Money crosses the
// wire as decimal strings ("10.00") and percentages likewise ("33.33"), so no
// client ever has to round a float.
package api
