package store

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"index;not null"`
	APIKey   string `gorm:"column:api_key;uniqueIndex;not null"`
	Password string `gorm:"not null"`
}

// Dependent rows point at their parent only. Owned collections (a user's
// tweets, a tweet's likes) are read through explicit join queries, and the
// belongs-to side carries the ON DELETE CASCADE constraint.
type Tweet struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"column:user_id;not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Content  string `gorm:"not null"`
}

// Media is uploaded before the tweet it belongs to exists, so TweetID
// stays NULL until the tweet is posted.
type Media struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	TweetID *uint  `gorm:"index"`
	Tweet   *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Media) TableName() string {
	return "medias"
}

type Like struct {
	ID      uint  `gorm:"primaryKey"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_likes_user_tweet"`
	User    User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	TweetID uint  `gorm:"not null;uniqueIndex:idx_likes_user_tweet;index"`
	Tweet   Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnDelete:CASCADE"`
}

// Follow is a directed edge: FollowingUserID follows FollowedUserID.
type Follow struct {
	FollowingUserID uint `gorm:"primaryKey;autoIncrement:false"`
	FollowingUser   User `gorm:"foreignKey:FollowingUserID;references:ID;constraint:OnDelete:CASCADE"`
	FollowedUserID  uint `gorm:"primaryKey;autoIncrement:false;index"`
	FollowedUser    User `gorm:"foreignKey:FollowedUserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string {
	return "followers"
}

// AllModels lists the tables in dependency order.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Tweet{}, &Media{}, &Like{}, &Follow{}}
}
