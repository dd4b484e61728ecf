package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/config"
	"github.com/yegebere/gebeya-auth/internal/infrastructure/delivery"
	"github.com/yegebere/gebeya-auth/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	rabbitPub     *helpers.RabbitPublisher
	smsGateway    *delivery.SMSGateway
	telegramBot   *delivery.TelegramBot
	deliveryChain *delivery.Chain
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher)  { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher   { return rabbitPub }
func SetSMSGateway(g *delivery.SMSGateway)     { smsGateway = g }
func GetSMSGateway() *delivery.SMSGateway      { return smsGateway }
func SetTelegramBot(b *delivery.TelegramBot)   { telegramBot = b }
func GetTelegramBot() *delivery.TelegramBot    { return telegramBot }
func SetDeliveryChain(ch *delivery.Chain)      { deliveryChain = ch }
func GetDeliveryChain() *delivery.Chain        { return deliveryChain }
