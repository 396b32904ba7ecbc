package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/session", group.UserHandler.Session)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		blogGroup := apiGroup.Group("/blogs")
		{
			publicGroup := blogGroup.Group("")
			publicGroup.Use(middleware.AuthOptionalMiddleware())
			{
				publicGroup.GET("", group.BlogHandler.ListBlogs)
				publicGroup.GET("/:slug", group.BlogHandler.GetBlogBySlug)
				publicGroup.POST("/stats", group.BlogActionHandler.GetBlogStats)
			}

			// 点赞状态与评论列表走 blog_id，避免与 slug 路由歧义
			statusGroup := blogGroup.Group("")
			statusGroup.Use(middleware.AuthOptionalMiddleware())
			{
				statusGroup.GET("/id/:blog_id/like", group.BlogActionHandler.GetLikeStatus)
				statusGroup.GET("/id/:blog_id/comments", group.BlogActionHandler.GetComments)
			}

			loggedGroup := blogGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.BlogHandler.CreateBlog)
				loggedGroup.PUT("/id/:blog_id", group.BlogHandler.UpdateBlog)
				loggedGroup.DELETE("/id/:blog_id", group.BlogHandler.DeleteBlog)
				loggedGroup.POST("/id/:blog_id/like", group.BlogActionHandler.ToggleLike)
				loggedGroup.POST("/id/:blog_id/comments", group.BlogActionHandler.CreateComment)
				loggedGroup.DELETE("/id/:blog_id/comments/:comment_id", group.BlogActionHandler.DeleteComment)
			}
		}

		draftGroup := apiGroup.Group("/draft")
		draftGroup.Use(middleware.AuthMiddleware())
		{
			draftGroup.GET("", group.DraftHandler.GetDraft)
			draftGroup.PUT("", group.DraftHandler.SaveDraft)
			draftGroup.DELETE("", group.DraftHandler.ClearDraft)
			draftGroup.POST("/blocks", group.DraftHandler.InsertBlock)
			draftGroup.PUT("/blocks/:block_id", group.DraftHandler.UpdateBlock)
			draftGroup.PUT("/blocks/:block_id/position", group.DraftHandler.ReorderBlock)
			draftGroup.DELETE("/blocks/:block_id", group.DraftHandler.RemoveBlock)
		}

		tweetGroup := apiGroup.Group("/tweets")
		{
			publicGroup := tweetGroup.Group("")
			publicGroup.Use(middleware.AuthOptionalMiddleware())
			{
				publicGroup.GET("", group.TweetHandler.ListTweets)
				publicGroup.GET("/:tweet_id", group.TweetHandler.GetTweet)
				publicGroup.GET("/:tweet_id/comments", group.TweetHandler.GetComments)
			}

			loggedGroup := tweetGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.TweetHandler.CreateTweet)
				loggedGroup.DELETE("/:tweet_id", group.TweetHandler.DeleteTweet)
				loggedGroup.POST("/:tweet_id/like", group.TweetHandler.ToggleLike)
				loggedGroup.POST("/:tweet_id/retweet", group.TweetHandler.ToggleRetweet)
				loggedGroup.POST("/:tweet_id/comments", group.TweetHandler.CreateComment)
				loggedGroup.POST("/comments/:comment_id/like", group.TweetHandler.ToggleCommentLike)
			}
		}

		followGroup := apiGroup.Group("/follow")
		{
			checkGroup := followGroup.Group("")
			checkGroup.Use(middleware.AuthOptionalMiddleware())
			{
				checkGroup.GET("/:user_id/check", group.UserFollowHandler.CheckFollow)
				checkGroup.GET("/:user_id/followers", group.UserFollowHandler.ListFollowers)
				checkGroup.GET("/:user_id/following", group.UserFollowHandler.ListFollowing)
			}

			loggedGroup := followGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/:user_id", group.UserFollowHandler.ToggleFollow)
			}
		}

		userGroup := apiGroup.Group("/users")
		{
			userGroup.GET("/:username", group.UserHandler.GetProfile)

			loggedGroup := userGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.PUT("/profile", group.UserHandler.UpdateProfile)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.POST("/delete", group.MediaHandler.DeleteBatch)
			mediaGroup.DELETE("", group.MediaHandler.Delete)
		}

		shortGroup := apiGroup.Group("/short-url")
		shortGroup.Use(middleware.AuthMiddleware())
		{
			shortGroup.POST("", group.ShortURLHandler.Create)
		}

		apiGroup.GET("/s/:code", group.ShortURLHandler.Resolve)
	}

	return r
}
