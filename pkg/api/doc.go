// Package api holds the wire messages of the republica.v1 services.
//
// Monetary fields are decimal strings ("12.50"); calendar dates are
// YYYY-MM-DD strings; timestamps are Unix seconds.
package api

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
