// Package errors provides coded, actionable errors for the particlewire
// CLI and HTTP server.
//
// Each code (e.g. "E102") maps to a registered template holding a
// category, a short message, a longer explanation and a documentation URL.
// Errors from the encoding packages are wrapped under a code at the edge
// of the program; the core packages return plain sentinel errors.
//
// # Categories
//
//   - config: particlewire.json could not be read or holds invalid values
//   - mapping: the mapping table could not be loaded
//   - encoding: a request could not be turned into a packet
//   - server: the HTTP server or the task manager refused an operation
//   - cli: missing or conflicting command-line input
//
// # Usage
//
//	err := errors.New(errors.CodeVersionInvalid).
//	    WithSuggestion("Use a version like 1.19 or 19").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//	// ERROR E102: Invalid protocol version
//	//
//	//   Cause: ...
//	//
//	//   Hint: Use a version like 1.19 or 19
//	//
//	//   Learn more: https://particlewire.dev/docs/errors/E102
package errors
