// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Codes map onto the failure categories a collection run reports:
// CONFIG aborts a run, the fetch family (UNREACHABLE, UNAUTHORIZED,
// TRANSPORT, FETCH), PARSE and WRITE are isolated to a single target.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnreachable,
//	    "host unreachable",
//	    dialErr,
//	    map[string]any{
//	        "address": "10.0.0.1",
//	        "port":    22,
//	    },
//	)
package errors
