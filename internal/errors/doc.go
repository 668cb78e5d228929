// Package errors provides typed errors with exit codes for forage-portfwd.
//
// # Error Types
//
// PortfwdError wraps an error with an exit code:
//
//	type PortfwdError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess       = 0 // Success
//	ExitGeneralError  = 1 // General/unknown errors
//	ExitInputNotFound = 2 // Port document path does not exist
//	ExitDocumentError = 3 // Port document unreadable or malformed
//	ExitOutputError   = 4 // Generated output could not be written
//	ExitSettingsError = 5 // Tool settings file invalid
//	ExitFindings      = 6 // Disabled rules or failed blocks (--strict, check)
//	ExitDrift         = 7 // Output on disk differs from a fresh compile (diff)
//
// Per-entry, per-container and per-interface problems never surface here:
// the compiler records them in its report and in the generated text. Only
// document-level and I/O failures abort a run.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
