// Package errors provides the structured error type used across aliasdi.
// Every failure raised by the container carries a machine-readable code
// so callers can branch on the failure class with errors.As or the Is*
// predicates instead of matching message text.
package errors
