package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	baseUsecases "helpdesk/internal/application/base/usecases"
	"helpdesk/internal/application/notification"
	notificationUsecases "helpdesk/internal/application/notification/usecases"
	settingUsecases "helpdesk/internal/application/setting/usecases"
	ticketUsecases "helpdesk/internal/application/ticket/usecases"
	userUsecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/telegram"
	"helpdesk/internal/interfaces/http/handlers"
	tickethandlers "helpdesk/internal/interfaces/http/handlers/ticket"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

// Container wires repositories, services, use cases, handlers and
// middlewares together. The router consumes it; nothing else should.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Handlers
	authHandler         *handlers.AuthHandler
	profileHandler      *handlers.ProfileHandler
	userHandler         *handlers.UserHandler
	settingHandler      *handlers.SettingHandler
	baseHandler         *handlers.BaseHandler
	notificationHandler *handlers.NotificationHandler
	ticketHandler       *tickethandlers.Handler
	healthHandler       *handlers.HealthHandler

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimit            gin.HandlerFunc
}

// NewContainer builds the full dependency graph. Construction order is
// repositories, infrastructure services, use cases, handlers.
func NewContainer(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	// Repositories.
	ticketRepo := repository.NewTicketRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	baseRepo := repository.NewBaseRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)
	numberGen := repository.NewTicketNumberGenerator(ticketRepo)
	txManager := db.NewTransactionManager(gormDB)

	// Infrastructure services.
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	markdownSvc := markdown.NewService()

	var botService *telegram.BotService
	var telegramSender notificationUsecases.TelegramSender
	var chatFinder settingUsecases.ChatFinder
	if cfg.Telegram.Enabled() {
		botService = telegram.NewBotService(cfg.Telegram)
		telegramSender = botService
		chatFinder = botService
	}

	var emailSender notificationUsecases.EmailSender
	if cfg.Email.Enabled() {
		emailSender = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.Username,
			Password:    cfg.Email.Password,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
	}

	enforcer, err := permission.NewEnforcer(gormDB, cfg.Permission.ModelPath, log)
	if err != nil {
		return nil, err
	}
	if err := enforcer.SeedDefaultPolicies(); err != nil {
		return nil, err
	}

	// Notification dispatch and the in-process notifier the ticket
	// operations use for fire-and-forget fan-out.
	dispatchUC := notificationUsecases.NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		telegramSender, emailSender,
		cfg.Notification.FrontendBaseURL, log,
	)
	notifier := notification.NewNotifier(dispatchUC, cfg.Notification.DispatchTimeoutSeconds, log)

	// Ticket use cases.
	createTicketUC := ticketUsecases.NewCreateTicketUseCase(ticketRepo, userRepo, numberGen, notifier, log)
	getTicketUC := ticketUsecases.NewGetTicketUseCase(ticketRepo, markdownSvc, log)
	listTicketsUC := ticketUsecases.NewListTicketsUseCase(ticketRepo, log)
	updateTicketUC := ticketUsecases.NewUpdateTicketUseCase(ticketRepo, notifier, log)
	changeStatusUC := ticketUsecases.NewChangeStatusUseCase(ticketRepo, entryRepo, txManager, notifier, log)
	changePriorityUC := ticketUsecases.NewChangePriorityUseCase(ticketRepo, notifier, log)
	assignTicketUC := ticketUsecases.NewAssignTicketUseCase(ticketRepo, userRepo, entryRepo, txManager, notifier, log)
	addCommentUC := ticketUsecases.NewAddCommentUseCase(ticketRepo, entryRepo, notifier, log)
	getStatsUC := ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, log)

	// User and auth use cases.
	registerUC := userUsecases.NewRegisterUseCase(userRepo, hasher, log)
	loginUC := userUsecases.NewLoginUseCase(userRepo, sessionRepo, hasher, jwtService, log)
	refreshUC := userUsecases.NewRefreshTokenUseCase(userRepo, sessionRepo, jwtService, log)
	logoutUC := userUsecases.NewLogoutUseCase(sessionRepo, log)
	getProfileUC := userUsecases.NewGetProfileUseCase(userRepo)
	updateProfileUC := userUsecases.NewUpdateProfileUseCase(userRepo, log)
	changePasswordUC := userUsecases.NewChangePasswordUseCase(userRepo, settingsRepo, hasher, log)
	listUsersUC := userUsecases.NewListUsersUseCase(userRepo)
	assignRoleUC := userUsecases.NewAssignRoleUseCase(userRepo, log)
	assignBasesUC := userUsecases.NewAssignBasesUseCase(userRepo, baseRepo, log)

	// Settings use cases.
	getSettingsUC := settingUsecases.NewGetSettingsUseCase(settingsRepo, log)
	updateNotificationsUC := settingUsecases.NewUpdateNotificationsUseCase(settingsRepo, log)
	linkTelegramUC := settingUsecases.NewLinkTelegramUseCase(settingsRepo, chatFinder, log)
	unlinkTelegramUC := settingUsecases.NewUnlinkTelegramUseCase(settingsRepo, chatFinder, log)

	// Base use cases.
	createBaseUC := baseUsecases.NewCreateBaseUseCase(baseRepo, log)
	listBasesUC := baseUsecases.NewListBasesUseCase(baseRepo, log)
	updateBaseUC := baseUsecases.NewUpdateBaseUseCase(baseRepo, log)
	deleteBaseUC := baseUsecases.NewDeleteBaseUseCase(baseRepo, log)
	setMembersUC := baseUsecases.NewSetBaseMembersUseCase(baseRepo, userRepo, txManager, log)

	// Handlers.
	c.authHandler = handlers.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, cfg.Auth.JWT, cfg.Auth.Cookie, log)
	c.profileHandler = handlers.NewProfileHandler(getProfileUC, updateProfileUC, changePasswordUC, log)
	c.userHandler = handlers.NewUserHandler(listUsersUC, assignRoleUC, assignBasesUC, log)
	c.settingHandler = handlers.NewSettingHandler(getSettingsUC, updateNotificationsUC, linkTelegramUC, unlinkTelegramUC, log)
	c.baseHandler = handlers.NewBaseHandler(createBaseUC, listBasesUC, updateBaseUC, deleteBaseUC, setMembersUC, log)
	c.notificationHandler = handlers.NewNotificationHandler(dispatchUC, log)
	c.ticketHandler = tickethandlers.NewHandler(
		createTicketUC, getTicketUC, listTicketsUC, updateTicketUC,
		changeStatusUC, changePriorityUC, assignTicketUC, addCommentUC, getStatsUC, log,
	)
	c.healthHandler = handlers.NewHealthHandler(Version)

	// Middlewares.
	c.authMiddleware = middleware.NewAuthMiddleware(jwtService, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)
	c.rateLimit = middleware.RateLimit(ratelimit.NewRedisRateLimiter(redisClient), cfg.RateLimit, log)

	return c, nil
}
