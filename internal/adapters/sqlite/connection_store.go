package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/db/queries"
)

// ConnectionStore persists per-user provider credentials.
type ConnectionStore struct {
	database connectionQueries
	now      func() time.Time
}

func NewConnectionStore(database connectionQueries) *ConnectionStore {
	return &ConnectionStore{database: database, now: time.Now}
}

func (s *ConnectionStore) GetByUser(ctx context.Context, userID string) (domain.Connection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Connection{}, domain.ErrConnectionNotFound
	}
	row, err := s.database.GetConnectionByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Connection{}, domain.ErrConnectionNotFound
	}
	if err != nil {
		return domain.Connection{}, fmt.Errorf("get connection: %w", err)
	}
	return mapConnection(row)
}

// Upsert writes only the tokens set in update; the other column keeps its
// stored value even under concurrent writers.
func (s *ConnectionStore) Upsert(ctx context.Context, userID string, update domain.ConnectionUpdate) (domain.Connection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Connection{}, fmt.Errorf("connection user id is required")
	}
	platform, err := encodeCredential(update.PlatformToken)
	if err != nil {
		return domain.Connection{}, err
	}
	partner, err := encodeCredential(update.PartnerToken)
	if err != nil {
		return domain.Connection{}, err
	}

	now := s.now().UTC().Unix()
	row, err := s.database.UpsertConnection(ctx, queries.UpsertConnectionParams{
		UserID:        userID,
		PlatformToken: platform,
		PartnerToken:  partner,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return domain.Connection{}, fmt.Errorf("upsert connection: %w", err)
	}
	return mapConnection(row)
}

func mapConnection(row queries.Connection) (domain.Connection, error) {
	platform, err := decodeCredential(row.PlatformToken)
	if err != nil {
		return domain.Connection{}, err
	}
	partner, err := decodeCredential(row.PartnerToken)
	if err != nil {
		return domain.Connection{}, err
	}
	return domain.Connection{
		UserID:        row.UserID,
		PlatformToken: platform,
		PartnerToken:  partner,
		CreatedAt:     time.Unix(row.CreatedAt, 0).UTC(),
		UpdatedAt:     time.Unix(row.UpdatedAt, 0).UTC(),
	}, nil
}

func encodeCredential(cred *domain.Credential) (sql.NullString, error) {
	if cred == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode credential: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func decodeCredential(value sql.NullString) (*domain.Credential, error) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil, nil
	}
	var cred domain.Credential
	if err := json.Unmarshal([]byte(value.String), &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &cred, nil
}
