package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrExpiredState is returned when a state token fails verification,
	// was issued for another hop, or was already consumed.
	ErrInvalidOrExpiredState = errors.New("invalid or expired link state")
	// ErrUpstreamAuth is returned when a provider rejects a code exchange.
	ErrUpstreamAuth = errors.New("upstream authorization failed")
	// ErrNotLinked is returned when a subscription is requested before linking.
	ErrNotLinked = errors.New("partner account is not linked")
	// ErrUpstreamSubscription is returned when the partner rejects a subscription call.
	ErrUpstreamSubscription = errors.New("upstream subscription call failed")
	// ErrConnectionNotFound is returned by stores when no connection exists for a user.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrSubscriptionNotFound is returned by stores and the partner API for unknown ids.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrStateAlreadyUsed is returned by a state ledger when a nonce was consumed before.
	ErrStateAlreadyUsed = errors.New("link state already used")
)

// UpstreamError records a failed call to a provider.
type UpstreamError struct {
	Provider string
	Op       string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UpstreamStatus returns the HTTP status of the first UpstreamError in err's chain, or 0.
func UpstreamStatus(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status
	}
	return 0
}

// LinkError carries correlation fields for a failed link step.
type LinkError struct {
	Step           string
	UserID         string
	CodePresent    bool
	UpstreamStatus int
	Err            error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s failed: %v", e.Step, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

