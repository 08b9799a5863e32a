package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/RMvanderGaag/find-a-buddy/internal/api/handler"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/service"
	mongodb "github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/db/mongo"
	redisdb "github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/db/redis"
	"github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/eventbus"
)

// stores bundles the open database handles and the repositories built on them.
type stores struct {
	client *mongo.Client
	db     *mongo.Database

	auth    *mongodb.MongoAuthRepository
	users   *mongodb.UserRepository
	topics  *mongodb.TopicRepository
	meetups *mongodb.MeetupRepository
}

func openStores(ctx context.Context) (*stores, error) {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return &stores{
		client:  client,
		db:      db,
		auth:    mongodb.NewAuthRepository(db),
		users:   mongodb.NewUserRepository(db),
		topics:  mongodb.NewTopicRepository(db),
		meetups: mongodb.NewMeetupRepository(db),
	}, nil
}

func (s *stores) close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongodb disconnect failed")
	}
}

func (s *stores) authService() *service.AuthService {
	return service.NewAuthService(s.auth, s.users, cfg.JWTSecret, cfg.TokenTTL)
}

func (s *stores) ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func openRedis(ctx context.Context) (*goredis.Client, error) {
	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return rdb, nil
}

// newEventPublisher dials RabbitMQ behind a circuit breaker, or logs events
// when no broker is configured.
func newEventPublisher() (eventbus.Publisher, error) {
	if cfg.Events.RabbitMQURL == "" {
		log.Info().Msg("RABBITMQ_URL not set, meetup events are logged only")
		return eventbus.NewLogPublisher(log), nil
	}
	rmq, err := eventbus.NewRabbitMQPublisher(cfg.Events.RabbitMQURL, log)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	return eventbus.NewBreakerPublisher(rmq, eventbus.DefaultBreakerConfig(), log), nil
}

func readinessChecks(s *stores, rdb *goredis.Client) map[string]handler.DependencyCheck {
	return map[string]handler.DependencyCheck{
		"mongodb": s.ping,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}
}
