package router

import (
	"github.com/yegebere/gebeya-auth/internal/application"
	"github.com/yegebere/gebeya-auth/internal/container"
	pginfra "github.com/yegebere/gebeya-auth/internal/infrastructure/postgres"
	handlers "github.com/yegebere/gebeya-auth/internal/interface/http"
	"github.com/yegebere/gebeya-auth/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	otpRepo := pginfra.NewOTPRepository(pool)
	contactRepo := pginfra.NewTelegramContactRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		otpRepo,
		application.NewRedisOTPGuard(container.GetRedis()),
		container.GetDeliveryChain(),
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
	)
	cfg := container.GetConfig()
	authSvc.OTPLength = cfg.OTPLength
	authSvc.OTPTTL = cfg.OTPTTL
	authSvc.IssueCooldown = cfg.OTPIssueCooldown
	authSvc.MaxAttempts = cfg.OTPMaxAttempts
	authSvc.Lockout = cfg.OTPLockout

	userSvc := application.NewUserService(userRepo, logger)
	tgSvc := application.NewTelegramService(contactRepo, container.GetTelegramBot(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()))
	r.Add(modules.NewTelegramModule(handlers.NewTelegramHandler(tgSvc, logger)))
}
