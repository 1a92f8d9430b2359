// Package rule holds the fixed-order Gauss-Legendre calibration tables.
//
// A Table pairs Order weights with Order abscissas on the reference interval
// [-1, 1]. Index i's weight belongs to index i's abscissa. Tables are built once
// from static calibration data and are read-only afterwards, so a single Table
// may be shared by any number of engines and goroutines without locking.
//
// Only the orders in SupportedOrders exist. Asking for any other order fails at
// construction time with a ConfigError; there is no runtime approximation.
//
// # Invariants
//
//   - Len() == int(Order()) for the table's whole lifetime
//   - every abscissa lies in the open interval (-1, 1)
//   - the weights sum to 2 (the measure of [-1, 1]) within calibration precision
//   - abscissas come in symmetric pairs carrying equal weights
//
// Table.Validate checks all of these and is run by the validate command and by
// the package tests for every supported order.
package rule
