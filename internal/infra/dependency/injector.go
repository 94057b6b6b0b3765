// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/commitly/backend/config"
	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/activity"
	"github.com/commitly/backend/internal/application/usecase/auth"
	"github.com/commitly/backend/internal/application/usecase/completion"
	"github.com/commitly/backend/internal/application/usecase/goal"
	"github.com/commitly/backend/internal/application/usecase/notification"
	"github.com/commitly/backend/internal/application/usecase/partnership"
	infradb "github.com/commitly/backend/internal/infra/db"
	"github.com/commitly/backend/internal/infra/server/router"
	"github.com/commitly/backend/internal/integration/adapters"
	"github.com/commitly/backend/internal/integration/email"
	"github.com/commitly/backend/internal/integration/email/templates"
	"github.com/commitly/backend/internal/integration/entrypoint/controller"
	"github.com/commitly/backend/internal/integration/entrypoint/middleware"
	"github.com/commitly/backend/internal/integration/lock"
	"github.com/commitly/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Redis         *redis.Client
	Router        *router.Router
	RateLimiter   *middleware.RateLimiter
	RefreshTokens persistence.TokenRepository
	// EmailWorker is nil when the worker is disabled by configuration.
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redisClient switches the completion lock to an in-process mutex.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	activityRepo := persistence.NewActivityRepository(db)
	completionRepo := persistence.NewCompletionRepository(db)
	streakRepo := persistence.NewStreakRepository(db)
	partnershipRepo := persistence.NewPartnershipRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(0)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	encouragementService := adapters.NewEncouragementService(adapters.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	locker := newLocker(cfg, redisClient)

	// Notifications fan out in-app and to the email queue
	dispatcher := notification.NewDispatcher(notificationRepo, userRepo, emailService)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, activityRepo, streakRepo, partnershipRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, activityRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, activityRepo, streakRepo, partnershipRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, activityRepo, streakRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	changeStatusUseCase := goal.NewChangeStatusUseCase(goalRepo, userRepo, partnershipRepo, dispatcher)
	reportProgressUseCase := goal.NewReportProgressUseCase(goalRepo, activityRepo, streakRepo)

	// Create completion use cases
	recordCompletionUseCase := completion.NewRecordCompletionUseCase(
		goalRepo,
		userRepo,
		streakRepo,
		completionRepo,
		partnershipRepo,
		locker,
		dispatcher,
		encouragementService,
	)
	getStreakUseCase := completion.NewGetStreakUseCase(goalRepo, userRepo, streakRepo, partnershipRepo)
	listCompletionsUseCase := completion.NewListCompletionsUseCase(goalRepo, completionRepo, partnershipRepo)

	// Create activity use cases
	listActivitiesUseCase := activity.NewListActivitiesUseCase(goalRepo, activityRepo, partnershipRepo)
	addActivityUseCase := activity.NewAddActivityUseCase(goalRepo, activityRepo)
	updateActivityUseCase := activity.NewUpdateActivityUseCase(goalRepo, activityRepo, userRepo, recordCompletionUseCase)
	deleteActivityUseCase := activity.NewDeleteActivityUseCase(goalRepo, activityRepo)

	// Create partnership use cases
	listPartnershipsUseCase := partnership.NewListPartnershipsUseCase(partnershipRepo)
	requestPartnershipUseCase := partnership.NewRequestPartnershipUseCase(userRepo, goalRepo, partnershipRepo, dispatcher)
	respondPartnershipUseCase := partnership.NewRespondPartnershipUseCase(partnershipRepo)
	removePartnershipUseCase := partnership.NewRemovePartnershipUseCase(partnershipRepo)

	// Create notification use cases
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	unreadCountUseCase := notification.NewUnreadCountUseCase(notificationRepo)
	markReadUseCase := notification.NewMarkReadUseCase(notificationRepo)
	markAllReadUseCase := notification.NewMarkAllReadUseCase(notificationRepo)

	// Create controllers
	var redisProbe controller.Probe
	if redisClient != nil {
		redisProbe = infradb.RedisProbe(redisClient)
	}
	healthController := controller.NewHealthController(infradb.PostgresProbe(db), redisProbe)

	controllers := router.Controllers{
		Health: healthController,
		Auth: controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase),
		User: controller.NewUserController(getProfileUseCase, updateProfileUseCase, deleteAccountUseCase),
		Goal: controller.NewGoalController(
			listGoalsUseCase,
			createGoalUseCase,
			getGoalUseCase,
			updateGoalUseCase,
			deleteGoalUseCase,
			changeStatusUseCase,
			reportProgressUseCase,
		),
		Activity: controller.NewActivityController(
			listActivitiesUseCase,
			addActivityUseCase,
			updateActivityUseCase,
			deleteActivityUseCase,
		),
		Completion: controller.NewCompletionController(
			recordCompletionUseCase,
			getStreakUseCase,
			listCompletionsUseCase,
		),
		Partnership: controller.NewPartnershipController(
			listPartnershipsUseCase,
			requestPartnershipUseCase,
			respondPartnershipUseCase,
			removePartnershipUseCase,
		),
		Notification: controller.NewNotificationController(
			listNotificationsUseCase,
			unreadCountUseCase,
			markReadUseCase,
			markAllReadUseCase,
		),
	}

	authenticator := middleware.NewAuthenticator(tokenService)
	loginRateLimiter := middleware.NewRateLimiter(loginAttempts(cfg), time.Minute)

	r := router.NewRouter(controllers, loginRateLimiter, authenticator)
	r.Setup(cfg.Server.Environment)

	injector := &Injector{
		Config:        cfg,
		DB:            db,
		Redis:         redisClient,
		Router:        r,
		RateLimiter:   loginRateLimiter,
		RefreshTokens: tokenRepo,
	}

	if cfg.Email.WorkerEnabled {
		worker, err := newEmailWorker(cfg, emailQueueRepo)
		if err != nil {
			return nil, err
		}
		injector.EmailWorker = worker
	}

	return injector, nil
}

func newLocker(cfg *config.Config, redisClient *redis.Client) adapter.KeyLocker {
	if redisClient == nil {
		slog.Warn("Redis not configured, completion lock is process-local")
		return lock.NewMemoryLocker(cfg.Lock.Wait)
	}
	return lock.NewFallbackLocker(
		lock.NewRedisLocker(redisClient, cfg.Lock.TTL, cfg.Lock.Wait, cfg.Lock.RetryBackoff),
		lock.NewMemoryLocker(cfg.Lock.Wait),
	)
}

func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository) (*email.Worker, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	var sender adapter.EmailSender = email.LogSender{}
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("Resend API key not configured, emails are logged instead of sent")
	}

	return email.NewWorker(queue, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		RetainSent:   cfg.Email.RetainSent,
	}), nil
}

// loginAttempts is the per-minute login budget of one client. Test runs log in far more often.
func loginAttempts(cfg *config.Config) int {
	if cfg.Server.Environment == "test" {
		return 1000
	}
	return 5
}
