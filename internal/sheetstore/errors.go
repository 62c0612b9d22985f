package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a failed store call for the HTTP layer.
type ErrorKind string

// Error kinds reported by the store.
const (
	KindAuth       ErrorKind = "auth_failure"
	KindPermission ErrorKind = "permission_denied"
	KindNotFound   ErrorKind = "not_found"
	KindQuota      ErrorKind = "quota_exceeded"
	KindTimeout    ErrorKind = "timeout"
	KindUnknown    ErrorKind = "unknown"
)

// StoreError wraps a failed Sheets call with its classified kind. The
// underlying error is kept for logs only and must never reach a response
// body.
type StoreError struct {
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("sheets %s: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Classify maps an error from the Sheets client onto the store taxonomy.
// Google API errors are classified by status code first; everything else
// falls back to message sniffing, matching how the upstream API words its
// failures.
func Classify(err error) *StoreError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &StoreError{Kind: KindTimeout, Err: err}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401:
			return &StoreError{Kind: KindAuth, Err: err}
		case 403:
			if containsAny(gerr.Message, "quota", "rate") {
				return &StoreError{Kind: KindQuota, Err: err}
			}
			return &StoreError{Kind: KindPermission, Err: err}
		case 404:
			return &StoreError{Kind: KindNotFound, Err: err}
		case 429:
			return &StoreError{Kind: KindQuota, Err: err}
		}
	}

	switch {
	case containsAny(err.Error(), "quota", "rate limit"):
		return &StoreError{Kind: KindQuota, Err: err}
	case containsAny(err.Error(), "permission_denied", "permission denied"):
		return &StoreError{Kind: KindPermission, Err: err}
	case containsAny(err.Error(), "not_found", "not found"):
		return &StoreError{Kind: KindNotFound, Err: err}
	case containsAny(err.Error(), "auth", "oauth2", "invalid_grant", "private key"):
		return &StoreError{Kind: KindAuth, Err: err}
	}

	return &StoreError{Kind: KindUnknown, Err: err}
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
