package dependency

import (
	"chatbot-svc/src/clients"
	"chatbot-svc/src/internal/cache"
	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/session"
	"chatbot-svc/src/internal/store"
	"chatbot-svc/src/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Manager struct {
	Router         *gin.Engine
	Config         *config.Configuration
	Connections    *Connections
	CacheService   cache.Service
	Publisher      clients.ActivityPublisher
	UserService    user.Service
	UserHandler    user.Handler
	SessionService session.Service
	SessionHandler session.Handler
}

func NewDependencyManager(router *gin.Engine, conns *Connections, cfg *config.Configuration) *Manager {
	var (
		userRepo    user.Repository
		sessionRepo session.Repository
		transactor  store.Transactor
	)

	if conns.Mongodb != nil {
		userRepo = user.NewMongoUserRepository(conns.Mongodb, cfg.Database.UserCollection)
		sessionRepo = session.NewMongoSessionRepository(conns.Mongodb, cfg.Database.SessionCollection)
		transactor = store.NewDirectTransactor()
	} else {
		userRepo = user.NewUserRepository(conns.Database.DB)
		sessionRepo = session.NewSessionRepository(conns.Database.DB)
		transactor = store.NewGormTransactor(conns.Database.DB)
	}

	cacheService := cache.NewNoopCache()
	if conns.Redis != nil {
		cacheService = cache.NewCacheService(conns.Redis.Client)
	}
	userRepo = user.NewCachedRepository(userRepo, cacheService, &cfg.Cache)

	publisher := clients.NewNoopPublisher()
	if conns.RabbitMQ != nil {
		publisher = clients.NewActivityPublisher(conns.RabbitMQ.Channel, &cfg.Queue.RabbitMQ)
	}

	userService := user.NewUserService(userRepo, transactor, publisher)
	sessionService := session.NewSessionService(sessionRepo, user.NewExistenceChecker(userRepo), transactor, publisher)

	return &Manager{
		Router:         router,
		Config:         cfg,
		Connections:    conns,
		CacheService:   cacheService,
		Publisher:      publisher,
		UserService:    userService,
		UserHandler:    user.NewHandler(cfg, userService),
		SessionService: sessionService,
		SessionHandler: session.NewHandler(cfg, sessionService),
	}
}
