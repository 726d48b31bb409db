// Package service holds the operations of the microblog: identity
// resolution, tweets, likes, follows, media and users. Each exported
// operation runs in exactly one transaction of the underlying store.
package service

import "microblog/internal/store"

type Services struct {
	Identity *IdentityResolver
	Tweets   *TweetService
	Likes    *LikeService
	Follows  *FollowService
	Media    *MediaService
	Users    *UserService
}

func New(s *store.Store) *Services {
	return &Services{
		Identity: NewIdentityResolver(s),
		Tweets:   NewTweetService(s),
		Likes:    NewLikeService(s),
		Follows:  NewFollowService(s),
		Media:    NewMediaService(s),
		Users:    NewUserService(s),
	}
}
