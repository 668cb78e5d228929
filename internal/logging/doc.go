// Package logging provides logging utilities for forage-portfwd.
//
// This package provides two categories of output:
//   - Diagnostics: Structured logs (via slog) for skipped entries, conflicts
//     and failed containers or interfaces
//   - User output: Short status messages for the person running the tool
//
// # Diagnostics
//
// Diagnostics are written using slog and controlled by verbosity settings:
//
//	logging.Warn("port already forwarded", "port", 8080, "protocol", "tcp", "owner", "10.0.0.1")
//	logging.Error("container skipped", "interface", "vmbr0", "container", 300, "error", err)
//
// Setup resets a pair of counters so a command can report how many warnings
// and errors a run produced:
//
//	warnings, errs := logging.Counts()
//
// # User Output
//
//	logging.UserInfo("Compiling %s...", path)
//	logging.UserSuccess("Wrote %d rules to %s", n, out)
//	logging.UserWarning("%d rules disabled", n)
//	logging.UserError("Failed to write output: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout by default)
//   - UserWarning, UserError: Stderr (os.Stderr by default)
package logging
