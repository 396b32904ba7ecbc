package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	TweetMaxLength = 280
)

const (
	ShortCodeLength     = 6
	ShortCodeMaxRetries = 10
)

const (
	DefaultAvatarKey = "default_avatar.png"
)
