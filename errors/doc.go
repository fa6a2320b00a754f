// Package errors provides structured error types for the genesis-bridge
// library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type carries the export symbol involved and
// a cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.Load("compile guest", cause)
//	err := errors.OutOfBounds(errors.PhaseMarshal, ptr, length, memSize)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
