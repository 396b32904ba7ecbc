package api

import "Inkstone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	BlogHandler       *handler.BlogHandler
	BlogActionHandler *handler.BlogActionHandler
	DraftHandler      *handler.DraftHandler
	TweetHandler      *handler.TweetHandler
	MediaHandler      *handler.MediaHandler
	ShortURLHandler   *handler.ShortURLHandler
}
