// Package apperrors defines the error kinds surfaced by the ledger workflows.
// Callers match on concrete types with errors.As rather than parsing messages.
package apperrors

import (
	"fmt"
	"strings"
)

// RemoteError wraps any transport failure or non-2xx response from the remote
// document store. Body carries the remote response text when available.
type RemoteError struct {
	Op   string // operation that failed, e.g. "create page"
	Body string // remote response text, empty on pure transport failures
	Err  error
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("notion: %s failed: %s", e.Op, e.Body)
	}
	return fmt.Sprintf("notion: %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ValidationError reports bad caller input before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientHoldingError reports a sell against a missing position or one
// smaller than the requested quantity. Held is 0 when no holding exists.
type InsufficientHoldingError struct {
	Ticker    string
	Requested float64
	Held      float64
}

func (e *InsufficientHoldingError) Error() string {
	if e.Held == 0 {
		return fmt.Sprintf("cannot sell %s: no existing holding", e.Ticker)
	}
	return fmt.Sprintf("cannot sell %v shares of %s, only %v held", e.Requested, e.Ticker, e.Held)
}

// PartialWriteError reports that a later step of a multi-write sequence failed
// after earlier steps already committed. The remote store offers no
// transactions, so the committed rows require manual remediation.
type PartialWriteError struct {
	Committed []string // steps that already wrote to the remote store, in order
	Step      string   // the step that failed
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("CRITICAL: %s failed after [%s] committed, fix manually: %v",
		e.Step, strings.Join(e.Committed, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
