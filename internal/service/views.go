package service

import (
	"fmt"

	"gorm.io/gorm"

	"microblog/internal/store"
)

type Author struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type LikeView struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// TweetView is a tweet with its author, likes and attachment references
// loaded in the same read.
type TweetView struct {
	ID          uint       `json:"id"`
	Content     string     `json:"content"`
	Attachments []string   `json:"attachments"`
	Author      Author     `json:"author"`
	Likes       []LikeView `json:"likes"`
}

type Profile struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Followers []Author `json:"followers"`
	Following []Author `json:"following"`
}

type tweetRow struct {
	ID         uint
	Content    string
	AuthorID   uint
	AuthorName string
}

type likeRow struct {
	TweetID uint
	UserID  uint
	Name    string
}

// loadTweetViews reads the tweets selected by scope together with their
// likes and media, three queries regardless of how many tweets match.
func loadTweetViews(tx *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]TweetView, error) {
	var rows []tweetRow
	err := scope(tx.Table("tweets").
		Select("tweets.id AS id, tweets.content AS content, users.id AS author_id, users.name AS author_name").
		Joins("JOIN users ON users.id = tweets.user_id")).
		Order("tweets.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweets: %w", err)
	}

	views := make([]TweetView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var likes []likeRow
	err = tx.Table("likes").
		Select("likes.tweet_id AS tweet_id, likes.user_id AS user_id, users.name AS name").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.tweet_id IN ?", ids).
		Order("likes.id").
		Scan(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes: %w", err)
	}

	var media []store.Media
	err = tx.Where("tweet_id IN ?", ids).Order("id").Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}

	likesByTweet := make(map[uint][]LikeView)
	for _, l := range likes {
		likesByTweet[l.TweetID] = append(likesByTweet[l.TweetID], LikeView{UserID: l.UserID, Name: l.Name})
	}
	mediaByTweet := make(map[uint][]string)
	for _, m := range media {
		mediaByTweet[*m.TweetID] = append(mediaByTweet[*m.TweetID], m.Name)
	}

	for _, row := range rows {
		view := TweetView{
			ID:          row.ID,
			Content:     row.Content,
			Author:      Author{ID: row.AuthorID, Name: row.AuthorName},
			Attachments: mediaByTweet[row.ID],
			Likes:       likesByTweet[row.ID],
		}
		if view.Attachments == nil {
			view.Attachments = []string{}
		}
		if view.Likes == nil {
			view.Likes = []LikeView{}
		}
		views = append(views, view)
	}
	return views, nil
}

func loadProfile(tx *gorm.DB, user *store.User) (*Profile, error) {
	profile := &Profile{ID: user.ID, Name: user.Name}

	err := tx.Table("users").
		Select("users.id AS id, users.name AS name").
		Joins("JOIN followers ON followers.following_user_id = users.id").
		Where("followers.followed_user_id = ?", user.ID).
		Order("users.id").
		Scan(&profile.Followers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followers: %w", err)
	}

	err = tx.Table("users").
		Select("users.id AS id, users.name AS name").
		Joins("JOIN followers ON followers.followed_user_id = users.id").
		Where("followers.following_user_id = ?", user.ID).
		Order("users.id").
		Scan(&profile.Following).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following: %w", err)
	}

	if profile.Followers == nil {
		profile.Followers = []Author{}
	}
	if profile.Following == nil {
		profile.Following = []Author{}
	}
	return profile, nil
}
