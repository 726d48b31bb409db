package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/store"
)

type FollowService struct {
	store *store.Store
}

func NewFollowService(s *store.Store) *FollowService {
	return &FollowService{store: s}
}

// Add makes the caller follow targetID. The composite primary key only
// rules out duplicate edges, so self-follows are rejected here.
func (s *FollowService) Add(ctx context.Context, apiKey string, targetID uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		if actor.ID == targetID {
			return errSelfFollow
		}

		var target store.User
		err = tx.Where("id = ?", targetID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoFollowTarget
		}
		if err != nil {
			return fmt.Errorf("failed to fetch user %d: %w", targetID, err)
		}

		edge := store.Follow{FollowingUserID: actor.ID, FollowedUserID: target.ID}
		err = tx.Omit(clause.Associations).Create(&edge).Error
		if store.IsUniqueViolation(err) {
			return ErrBadFollow
		}
		if err != nil {
			return fmt.Errorf("failed to insert follow: %w", err)
		}
		return nil
	})
}

func (s *FollowService) Remove(ctx context.Context, apiKey string, targetID uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&store.Follow{}).
			Where("following_user_id = ? AND followed_user_id = ?", actor.ID, targetID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to fetch follow: %w", err)
		}
		if count == 0 {
			return ErrBadFollowDelete
		}

		err = tx.Where("following_user_id = ? AND followed_user_id = ?", actor.ID, targetID).
			Delete(&store.Follow{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}
		return nil
	})
}
