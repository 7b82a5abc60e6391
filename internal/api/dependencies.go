package api

import (
	"os"

	"github.com/redis/go-redis/v9"

	"lifewithchrist/community/internal/auth"
	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/db"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/providers"
	"lifewithchrist/community/internal/realtime"
	"lifewithchrist/community/internal/services"
)

type Repositories struct {
	Users         *repositories.UserRepository
	Posts         *repositories.PostRepository
	Groups        *repositories.GroupRepository
	Events        *repositories.EventRepository
	Prayers       *repositories.PrayerRepository
	Devotionals   *repositories.DevotionalRepository
	Notifications *repositories.NotificationRepository
	Stats         *repositories.StatsRepository
}

type Services struct {
	Cache         *common.CacheService
	Queue         *common.EmailQueueService
	LinkSigner    *common.LinkSignerService
	Identity      auth.IdentityProvider
	Account       *services.AccountService
	Posts         *services.PostService
	Groups        *services.GroupService
	Events        *services.EventService
	Prayers       *services.PrayerService
	Devotionals   *services.DevotionalService
	Notifications *services.NotificationService
	Admin         *services.AdminService
}

type Dependencies struct {
	Repo       *Repositories
	Services   *Services
	Redis      *redis.Client
	Subscriber *realtime.Subscriber
	Metrics    *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	redisClient := common.NewRedisClient()
	secretKey := []byte(os.Getenv("SESSION_SECRET"))

	repos := &Repositories{
		Users:         repositories.NewUserRepository(db.PgDB),
		Posts:         repositories.NewPostRepository(db.PgDB),
		Groups:        repositories.NewGroupRepository(db.PgDB),
		Events:        repositories.NewEventRepository(db.PgDB),
		Prayers:       repositories.NewPrayerRepository(db.PgDB),
		Devotionals:   repositories.NewDevotionalRepository(db.PgDB),
		Notifications: repositories.NewNotificationRepository(db.PgDB),
		Stats:         repositories.NewStatsRepository(db.DB),
	}

	cacheSvc := common.NewCacheService(60, 600)
	queueSvc := common.NewEmailQueueService(redisClient)
	linkSigner := common.NewLinkSignerService(secretKey, redisClient)
	identitySvc := auth.NewIdentityService(db.PgDB, redisClient, secretKey)
	functionsSvc := providers.NewFunctionsProvider()
	publisher := realtime.NewRedisPublisher(redisClient)

	notificationSvc := services.NewNotificationService(repos.Notifications, publisher, metricsReg)
	accountSvc := services.NewAccountService(identitySvc, repos.Users, metricsReg)

	svcs := &Services{
		Cache:         cacheSvc,
		Queue:         queueSvc,
		LinkSigner:    linkSigner,
		Identity:      identitySvc,
		Account:       accountSvc,
		Posts:         services.NewPostService(repos.Posts, notificationSvc),
		Groups:        services.NewGroupService(repos.Groups, notificationSvc),
		Events:        services.NewEventService(repos.Events, functionsSvc, notificationSvc),
		Prayers:       services.NewPrayerService(repos.Prayers, notificationSvc),
		Devotionals:   services.NewDevotionalService(repos.Devotionals, queueSvc, metricsReg),
		Notifications: notificationSvc,
		Admin:         services.NewAdminService(repos.Users, repos.Posts, repos.Stats, queueSvc, notificationSvc, metricsReg),
	}

	return &Dependencies{
		Repo:       repos,
		Services:   svcs,
		Redis:      redisClient,
		Subscriber: realtime.NewSubscriber(redisClient),
		Metrics:    metricsReg,
	}, nil
}
