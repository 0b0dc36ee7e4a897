// Package cli parses ledmap's command line and environment into a Config
// and carries process exit codes back to main through ExitError.
package cli
