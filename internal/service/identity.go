package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"microblog/internal/store"
)

// IdentityResolver maps an api key to the user that owns it.
type IdentityResolver struct {
	store *store.Store
}

func NewIdentityResolver(s *store.Store) *IdentityResolver {
	return &IdentityResolver{store: s}
}

func (r *IdentityResolver) Resolve(ctx context.Context, apiKey string) (*store.User, error) {
	return resolveIdentity(r.store.DB(ctx), apiKey)
}

// resolveIdentity is the first statement of every mutating operation and
// runs on the caller's transaction.
func resolveIdentity(tx *gorm.DB, apiKey string) (*store.User, error) {
	if apiKey == "" {
		return nil, ErrNoUser
	}
	var user store.User
	err := tx.Where("api_key = ?", apiKey).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}
	return &user, nil
}
