package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/config"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer"
	"github.com/surajkarki66/MediLeaf-backend/pkg/session"
	"github.com/surajkarki66/MediLeaf-backend/pkg/token"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	tokenMaker   *token.Maker
	sessionStore *session.Store
	cookieMgr    *helpers.CookieManager

	dispatcher *mailer.Dispatcher
	rabbitPub  *helpers.RabbitPublisher
	esClient   *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetGCS(s *storage.Client)   { gcsClient = s }
func GetGCS() *storage.Client    { return gcsClient }

func SetTokenMaker(m *token.Maker)            { tokenMaker = m }
func GetTokenMaker() *token.Maker             { return tokenMaker }
func SetSessions(s *session.Store)            { sessionStore = s }
func GetSessions() *session.Store             { return sessionStore }
func SetCookies(m *helpers.CookieManager)     { cookieMgr = m }
func GetCookies() *helpers.CookieManager      { return cookieMgr }
func SetDispatcher(d *mailer.Dispatcher)      { dispatcher = d }
func GetDispatcher() *mailer.Dispatcher       { return dispatcher }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
