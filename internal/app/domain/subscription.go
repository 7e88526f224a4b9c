package domain

import "time"

// Subscription is a partner webhook subscription owned by one platform user.
type Subscription struct {
	ID          string
	OwnerUserID string
	CallbackURL string
	CreatedAt   time.Time
}
