// Package layout defines the in-memory LED group layout produced by the
// config loader: the Action enum, per-member LedAction records, and the
// group-path keyed GroupMap handed to the LED controller.
//
// A GroupMap is owned by the caller once returned. Nothing in this package
// keeps references to it.
package layout
