package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festival-quiz/internal/app"
	"festival-quiz/internal/config"
	"festival-quiz/internal/festival"
	"festival-quiz/internal/infra/memory"
	pgloader "festival-quiz/internal/infra/postgres"
	redisstore "festival-quiz/internal/infra/redis"
	transport "festival-quiz/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const serverThemePrefix = "festival-quiz:server"

// NewServeCmd runs the quiz server that participants' clients talk to.
func NewServeCmd(opts *options) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the festival quiz server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			return runServer(cmd.Context(), opts.cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = newRedisClient(cfg.Redis)
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader app.QuestionSource = memory.NewDemoQuestionSource()
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionSource
	var themes app.KeyValueStore
	if redisClient != nil {
		questions = redisstore.NewQuestionCache(redisClient, loader, quizTTL)
		themes = redisstore.NewKVStore(redisClient, serverThemePrefix, 0)
	} else {
		questions = memory.NewQuestionCache(loader, quizTTL)
		themes = memory.NewKVStore()
	}

	service := festival.NewService(themes, festival.NewBoard(), questions)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      transport.NewRouter(service),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting festival quiz server on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
