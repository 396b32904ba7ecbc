package consts

const (
	DraftBlogKey         = "draft:blog:"
	BlogLikeCountKey     = "blog:like:count:"
	TweetLikeCountKey    = "tweet:like:count:"
	UserFollowerCountKey = "user:follower:count:"
	ShortURLClicksKey    = "shorturl:clicks:"
	ShortURLTargetKey    = "shorturl:target:"
)

const (
	SlugLock = "lock:slug:"
)
