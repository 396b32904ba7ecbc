package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/events"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Producer *events.Producer
	CronMgr  *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	blogRepo := repository.NewBlogRepository(db)
	blogActionRepo := repository.NewBlogActionRepo(db)
	draftRepo := repository.NewDraftRepository()
	tweetRepo := repository.NewTweetRepository(db)
	shortURLRepo := repository.NewShortURLRepository(db)

	producer, err := events.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, userFollowRepo, blogRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo, producer)
	blogService := service.NewBlogService(blogRepo, blogActionRepo, draftRepo, producer)
	blogActionService := service.NewBlogActionService(blogActionRepo, blogRepo, producer)
	draftService := service.NewDraftService(draftRepo)
	tweetService := service.NewTweetService(tweetRepo, producer)
	mediaService := service.NewMediaService()
	shortURLService := service.NewShortURLService(shortURLRepo)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		UserFollowHandler: handler.NewUserFollowHandler(userFollowService),
		BlogHandler:       handler.NewBlogHandler(blogService),
		BlogActionHandler: handler.NewBlogActionHandler(blogActionService),
		DraftHandler:      handler.NewDraftHandler(draftService),
		TweetHandler:      handler.NewTweetHandler(tweetService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		ShortURLHandler:   handler.NewShortURLHandler(shortURLService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewShortURLSyncJob(shortURLService),
		job.NewDraftSweepJob(draftRepo),
	)

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		Producer: producer,
		CronMgr:  cronMgr,
	}, nil
}
