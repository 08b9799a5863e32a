package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RMvanderGaag/find-a-buddy/internal/api"
	"github.com/RMvanderGaag/find-a-buddy/internal/api/middleware"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/service"
	redisdb "github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/db/redis"
	"github.com/RMvanderGaag/find-a-buddy/internal/infrastructure/queue"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	rdb, err := openRedis(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	publisher, err := newEventPublisher()
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	dispatcher := queue.NewDispatcher(cfg.Events.Workers, publisher, log)
	dispatcher.Start(ctx)

	meetups := service.NewMeetupService(st.meetups, st.users, st.topics, log,
		service.WithIdempotency(redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)),
		service.WithEvents(dispatcher),
	)

	e := api.NewRouter(api.Deps{
		Auth:        st.authService(),
		Meetups:     meetups,
		Users:       service.NewUserService(st.users, st.topics, log),
		Topics:      service.NewTopicService(st.topics, log),
		JWTSecret:   cfg.JWTSecret,
		AuthLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Checks:      readinessChecks(st, rdb),
		Logger:      log,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
