package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gpr-quiz-bot/internal/app"
	"gpr-quiz-bot/internal/config"
	"gpr-quiz-bot/internal/domain"
	"gpr-quiz-bot/internal/infra/memory"
	pgstore "gpr-quiz-bot/internal/infra/postgres"
	redissession "gpr-quiz-bot/internal/infra/redis"
	"gpr-quiz-bot/internal/transport/telegram"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewRunCmd builds the CLI subcommand to start the bot.
func NewRunCmd(configPath, token *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), *configPath, *token)
		},
	}
}

func runBot(ctx context.Context, configPath, tokenFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	botToken := tokenFlag
	if botToken == "" {
		botToken = cfg.Telegram.Token
	}
	if botToken == "" {
		return fmt.Errorf("telegram token not configured")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var roundRepo app.RoundRepository
	var guessRepo app.GuessRepository
	if pool != nil {
		store := pgstore.NewDocumentStore(pool)
		roundRepo, guessRepo = store, store
	} else {
		store := memory.NewDocumentStore()
		roundRepo, guessRepo = store, store
	}

	cacheTTL := config.TTLDuration(cfg.Quiz.RoundCacheTTL, time.Minute)
	rounds := app.NewRoundService(memory.NewRoundCache(roundRepo, cacheTTL))

	loc := time.Local
	if cfg.Quiz.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Quiz.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
	}
	cutoff := config.TTLDuration(cfg.Quiz.Cutoff, domain.DefaultCutoff)
	guesses := app.NewGuessService(guessRepo, domain.NewCalendar(cutoff, loc))

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redissession.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}
	dispatcher := app.NewDispatcher(sessions, rounds, guesses)

	bot, err := telegram.New(botToken, dispatcher, cfg.Telegram.GuessesChannelID)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(runCtx)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down bot...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down bot...")
	case err := <-errCh:
		return err
	}
	cancel()
	return <-errCh
}
