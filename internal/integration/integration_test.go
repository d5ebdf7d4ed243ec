package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"festival-quiz/internal/app"
	"festival-quiz/internal/domain"
	"festival-quiz/internal/festival"
	"festival-quiz/internal/infra/memory"
	pgloader "festival-quiz/internal/infra/postgres"
	pgmigrations "festival-quiz/internal/infra/postgres/migrations"
	infraredis "festival-quiz/internal/infra/redis"
	transport "festival-quiz/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestFestivalRoundEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateSchema(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuestionLoader(pool)
	if err := loader.SaveQuestions(ctx, "festival", sampleQuestions()); err != nil {
		t.Fatalf("seed questions: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	questionCache := infraredis.NewQuestionCache(redisClient, loader, 5*time.Minute)
	themes := infraredis.NewKVStore(redisClient, "festival-quiz:server", 0)
	service := festival.NewService(themes, festival.NewBoard(), questionCache)
	server := httptest.NewServer(transport.NewRouter(service))
	defer server.Close()

	client := transport.NewClient(transport.ClientConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	cache := app.NewLocalCache(memory.NewKVStore())

	outcome, err := app.NewThemeSync(cache, client).PublishTheme(ctx, "Aizu farming")
	if err != nil || outcome != domain.PublishSynced {
		t.Fatalf("publish theme: outcome=%v err=%v", outcome, err)
	}
	stored, ok, err := themes.Get(ctx, app.ThemeKey)
	if err != nil || !ok || stored != "Aizu farming" {
		t.Fatalf("theme not stored in redis: %q ok=%v err=%v", stored, ok, err)
	}

	questions, err := client.LoadQuestions(ctx, "festival")
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	ranking := app.NewRankingClient(client)
	engine, err := app.NewQuizEngine(questions, 2, ranking)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := engine.Start("Hana"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := engine.Answer(ctx, 1); err != nil {
		t.Fatalf("answer 1: %v", err)
	}
	result, err := engine.Answer(ctx, 0)
	if err != nil {
		t.Fatalf("answer 2: %v", err)
	}
	if !result.Finished || result.Score != 2 || result.Submission != domain.SubmitOK {
		t.Fatalf("unexpected result: %+v", result)
	}

	entries, err := ranking.FetchRanking(ctx)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(entries) != 1 || entries[0] != (domain.RankingEntry{Name: "Hana", Score: 2}) {
		t.Fatalf("unexpected ranking: %+v", entries)
	}

	if err := ranking.ResetRanking(ctx, engine); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if engine.State() != domain.StateNotStarted {
		t.Fatalf("expected local session discarded, got %s", engine.State())
	}
	entries, err = ranking.FetchRanking(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty ranking after reset, got %+v err=%v", entries, err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateSchema(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "Which castle stands in Aizu-Wakamatsu?", Choices: []string{"Himeji", "Tsuruga", "Matsumoto"}, CorrectIndex: 1},
		{ID: "q2", Text: "What is Aizu's lacquerware called?", Choices: []string{"Aizu-nuri", "Wajima-nuri"}, CorrectIndex: 0},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
