package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/store"
)

type TweetService struct {
	store *store.Store
}

func NewTweetService(s *store.Store) *TweetService {
	return &TweetService{store: s}
}

// Create publishes a tweet owned by the caller and returns its id.
func (s *TweetService) Create(ctx context.Context, apiKey, content string) (uint, error) {
	return s.Post(ctx, apiKey, content, nil)
}

// Post creates the tweet and attaches the already uploaded media to it in
// one transaction.
func (s *TweetService) Post(ctx context.Context, apiKey, content string, mediaIDs []uint) (uint, error) {
	var tweetID uint
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}

		tweet := store.Tweet{AuthorID: actor.ID, Content: content}
		if err := tx.Omit(clause.Associations).Create(&tweet).Error; err != nil {
			return fmt.Errorf("failed to insert tweet: %w", err)
		}
		if err := attachMedia(tx, tweet.ID, mediaIDs); err != nil {
			return err
		}
		tweetID = tweet.ID
		return nil
	})
	return tweetID, err
}

// AttachMedia points the given media rows at tweetID. Unknown media ids
// are skipped; an unknown tweet is an error.
func (s *TweetService) AttachMedia(ctx context.Context, tweetID uint, mediaIDs []uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := findTweet(tx, tweetID); err != nil {
			return err
		}
		return attachMedia(tx, tweetID, mediaIDs)
	})
}

func (s *TweetService) Get(ctx context.Context, tweetID uint) (*TweetView, error) {
	var view *TweetView
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		views, err := loadTweetViews(tx, func(q *gorm.DB) *gorm.DB {
			return q.Where("tweets.id = ?", tweetID)
		})
		if err != nil {
			return err
		}
		if len(views) == 0 {
			return ErrNoTweet
		}
		view = &views[0]
		return nil
	})
	return view, err
}

func (s *TweetService) ListByAuthor(ctx context.Context, apiKey string) ([]TweetView, error) {
	var views []TweetView
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		views, err = loadTweetViews(tx, func(q *gorm.DB) *gorm.DB {
			return q.Where("tweets.user_id = ?", actor.ID)
		})
		return err
	})
	return views, err
}

// Delete removes a tweet owned by the caller. Its likes and media go with
// it through the foreign key cascade.
func (s *TweetService) Delete(ctx context.Context, apiKey string, tweetID uint) error {
	return s.store.WithTx(ctx, func(tx *gorm.DB) error {
		actor, err := resolveIdentity(tx, apiKey)
		if err != nil {
			return err
		}
		tweet, err := findTweet(tx, tweetID)
		if err != nil {
			return err
		}
		if tweet.AuthorID != actor.ID {
			return ErrNoAccess
		}

		err = tx.Where("id = ? AND user_id = ?", tweetID, actor.ID).Delete(&store.Tweet{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete tweet %d: %w", tweetID, err)
		}
		return nil
	})
}

func findTweet(tx *gorm.DB, tweetID uint) (*store.Tweet, error) {
	var tweet store.Tweet
	err := tx.Where("id = ?", tweetID).First(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTweet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweet %d: %w", tweetID, err)
	}
	return &tweet, nil
}

func attachMedia(tx *gorm.DB, tweetID uint, mediaIDs []uint) error {
	if len(mediaIDs) == 0 {
		return nil
	}
	err := tx.Model(&store.Media{}).Where("id IN ?", mediaIDs).Update("tweet_id", tweetID).Error
	if err != nil {
		return fmt.Errorf("failed to attach media to tweet %d: %w", tweetID, err)
	}
	return nil
}
