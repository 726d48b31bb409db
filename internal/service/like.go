package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/store"
)

type LikeService struct {
	store *store.Store
}

func NewLikeService(s *store.Store) *LikeService {
	return &LikeService{store: s}
}

// Add records a like. The unique (user_id, tweet_id) index decides races
// between concurrent likes; the loser gets ErrBadLike.
func (s *LikeService) Add(ctx context.Context, apiKey string, tweetID uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		if _, err := findTweet(tx, tweetID); err != nil {
			return err
		}

		like := store.Like{UserID: actor.ID, TweetID: tweetID}
		err = tx.Omit(clause.Associations).Create(&like).Error
		if store.IsUniqueViolation(err) {
			return ErrBadLike
		}
		if err != nil {
			return fmt.Errorf("failed to insert like: %w", err)
		}
		return nil
	})
}

func (s *LikeService) Remove(ctx context.Context, apiKey string, tweetID uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		if _, err := findTweet(tx, tweetID); err != nil {
			return err
		}

		var like store.Like
		err = tx.Where("user_id = ? AND tweet_id = ?", actor.ID, tweetID).First(&like).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadLikeDelete
		}
		if err != nil {
			return fmt.Errorf("failed to fetch like: %w", err)
		}

		if err := tx.Delete(&store.Like{}, like.ID).Error; err != nil {
			return fmt.Errorf("failed to delete like %d: %w", like.ID, err)
		}
		return nil
	})
}
