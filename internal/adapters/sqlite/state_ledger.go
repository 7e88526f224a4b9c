package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/db/queries"
	"github.com/fr0stylo/linkbridge/internal/statetoken"
)

// StateLedger remembers consumed state token nonces until the token would
// have expired anyway.
type StateLedger struct {
	database linkStateQueries
	now      func() time.Time
}

func NewStateLedger(database linkStateQueries) *StateLedger {
	return &StateLedger{database: database, now: time.Now}
}

// Consume records nonce as used. A second call for the same nonce returns
// domain.ErrStateAlreadyUsed.
func (l *StateLedger) Consume(ctx context.Context, nonce string, hop statetoken.Hop, expiresAt time.Time) error {
	nonce = strings.TrimSpace(nonce)
	if nonce == "" {
		return fmt.Errorf("state nonce is required")
	}
	if _, err := l.PurgeExpired(ctx); err != nil {
		return err
	}
	inserted, err := l.database.ConsumeLinkState(ctx, queries.ConsumeLinkStateParams{
		Nonce:      nonce,
		Hop:        string(hop),
		ExpiresAt:  expiresAt.UTC().Unix(),
		ConsumedAt: l.now().UTC().Unix(),
	})
	if err != nil {
		return fmt.Errorf("consume link state: %w", err)
	}
	if inserted == 0 {
		return domain.ErrStateAlreadyUsed
	}
	return nil
}

// PurgeExpired drops nonces whose tokens can no longer verify and reports how
// many were removed.
func (l *StateLedger) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := l.database.PurgeExpiredLinkStates(ctx, l.now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge link states: %w", err)
	}
	return purged, nil
}
