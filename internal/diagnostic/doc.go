// Package diagnostic provides structured errors and warnings for LED group
// config documents.
//
// Key capabilities:
//   - Schema violations reported per field
//   - Load failures mapped to stable codes (priority_conflict, invalid_action, ...)
//   - Authoring warnings such as blinking without a period
//   - "Did you mean" suggestions attached to misspelled keys and values
package diagnostic
