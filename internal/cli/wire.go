package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quizmaster/internal/app"
	"quizmaster/internal/bank"
	"quizmaster/internal/config"
	"quizmaster/internal/i18n"
	"quizmaster/internal/infra/file"
	"quizmaster/internal/infra/memory"
	"quizmaster/internal/infra/postgres"
	"quizmaster/internal/infra/redis"
	"quizmaster/internal/infra/xlsx"
	"quizmaster/internal/logger"
)

// stack holds everything a command needs once config is loaded.
type stack struct {
	cfg     config.Config
	logger  *zap.Logger
	loc     *i18n.Localizer
	service *app.QuizService

	closers []func()
}

func (r *stack) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	_ = r.logger.Sync()
}

// setup loads config, builds the logger and the localizer.
func setup(opts *options) (*stack, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	lang := cfg.Language
	if opts.lang != "" {
		lang = opts.lang
	}
	return &stack{cfg: cfg, logger: log, loc: i18n.New(lang)}, nil
}

// bootstrap wires the question source, the stores and the quiz service.
// A question source that cannot be loaded is fatal.
func bootstrap(ctx context.Context, opts *options) (*stack, error) {
	rt, err := setup(opts)
	if err != nil {
		return nil, err
	}
	cfg := rt.cfg

	var client *goredis.Client
	if cfg.Redis.Addr != "" {
		client = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = client.Close() })
	}

	loader, err := rt.questionLoader(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	ttl := config.Duration(cfg.Questions.CacheTTL, 10*time.Minute)
	if client != nil {
		loader = redis.NewQuestionCache(client, loader, ttl)
	} else {
		loader = memory.NewCachedLoader(loader, ttl)
	}

	questions, err := bank.Load(ctx, loader)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.logger.Info("questions loaded", zap.String("source", cfg.Questions.Source), zap.Int("count", questions.Len()))

	scores, profiles, err := rt.stores(client)
	if err != nil {
		rt.Close()
		return nil, err
	}

	// Games after the first reload through the cache, so edits to the source show up once the TTL passes.
	rt.service = app.NewQuizService(questions, scores, profiles, rt.logger,
		app.WithRules(cfg.Rules()),
		app.WithTopN(cfg.Quiz.TopN),
		app.WithSource(loader),
	)
	return rt, nil
}

func (r *stack) questionLoader(ctx context.Context) (bank.Loader, error) {
	q := r.cfg.Questions
	switch strings.ToLower(q.Source) {
	case "", "file":
		return file.NewQuestionLoader(q.Path), nil
	case "xlsx":
		return xlsx.NewQuestionLoader(q.Path, q.Sheet), nil
	case "postgres":
		if r.cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, r.cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		r.closers = append(r.closers, pool.Close)
		return postgres.NewQuestionLoader(pool), nil
	default:
		return nil, fmt.Errorf("unknown question source %q", q.Source)
	}
}

func (r *stack) stores(client *goredis.Client) (app.ScoreStore, app.ProfileStore, error) {
	s := r.cfg.Storage
	switch strings.ToLower(s.Backend) {
	case "", "file":
		return file.NewScoreStore(s.Scores, r.logger), file.NewProfileStore(s.Profiles, r.logger), nil
	case "redis":
		if client == nil {
			return nil, nil, fmt.Errorf("redis backend needs redis.addr")
		}
		return redis.NewScoreStore(client), redis.NewProfileStore(client), nil
	case "memory":
		return memory.NewScoreStore(), memory.NewProfileStore(), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}
