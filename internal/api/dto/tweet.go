package dto

// TweetCreateDTO 推文 - 新增
type TweetCreateDTO struct {
	Content   string   `json:"content"`
	ImageKeys []string `json:"imageKeys" validate:"max=4"`
	ReplyToID *uint64  `json:"replyToId,omitempty"`
}

// TweetDTO 推文
type TweetDTO struct {
	ID        uint64   `json:"id"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls"`
	ReplyToID *uint64  `json:"replyToId,omitempty"`
	IsRetweet bool     `json:"isRetweet"`
	OriginalID *uint64 `json:"originalId,omitempty"`
	CreatedAt string   `json:"createdAt"`

	UserID    uint64 `json:"userId"`
	Author    string `json:"author"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`

	LikeCount    int64 `json:"likeCount"`
	RetweetCount int64 `json:"retweetCount"`
	CommentCount int64 `json:"commentCount"`
	Liked        bool  `json:"liked"`
	Retweeted    bool  `json:"retweeted"`
}

// TweetListDTO 推文列表
type TweetListDTO struct {
	List    []*TweetDTO `json:"list"`
	HasMore bool        `json:"hasMore"`
}

// TweetCommentDTO 推文评论
type TweetCommentDTO struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`

	UserID    uint64 `json:"userId"`
	Author    string `json:"author"`
	AvatarURL string `json:"avatarUrl,omitempty"`

	LikeCount int64 `json:"likeCount"`
	Liked     bool  `json:"liked"`
}

// ToggleResultDTO 通用切换结果
type ToggleResultDTO struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
