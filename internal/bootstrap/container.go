package bootstrap

import (
	"context"
	"log"

	"rockspec-notes/internal/config"
	"rockspec-notes/internal/controller"
	"rockspec-notes/internal/pkg/logger"
	"rockspec-notes/internal/pkg/password"
	"rockspec-notes/internal/pkg/serverutils"
	"rockspec-notes/internal/pkg/session"
	"rockspec-notes/internal/pkg/throttle"
	"rockspec-notes/internal/repository/memory"
	"rockspec-notes/internal/repository/unitofwork"
	"rockspec-notes/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	AuthController controller.IAuthController
	NoteController controller.INoteController
	Guard          *serverutils.AuthGuard
	Logger         logger.ILogger

	// Background services, run by main.
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus for note lifecycle events.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Redis backs the login throttle only; the app runs without it.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	sessions := session.NewManager(cfg.Session.Secret)
	hasher := password.NewHasher(cfg.Session.BcryptCost)
	previews := memory.NewPreviewCache()
	loginThrottle := throttle.New(rdb, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.NoteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.NoteEventsTopic, sysLogger)

	authService := service.NewAuthService(uowFactory, hasher)
	noteService := service.NewNoteService(uowFactory, publisherService, previews, sysLogger)

	guard := serverutils.NewAuthGuard(sessions)

	return &Container{
		AuthController:  controller.NewAuthController(authService, sessions, loginThrottle),
		NoteController:  controller.NewNoteController(noteService),
		Guard:           guard,
		Logger:          sysLogger,
		ConsumerService: consumerService,
	}
}
