package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pub-trivia-service/internal/config"
	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"pub-trivia-service/internal/infra/memory"
	pgloader "pub-trivia-service/internal/infra/postgres"
	redissession "pub-trivia-service/internal/infra/redis"
	transport "pub-trivia-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 4*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.PackLoader = memory.NewStaticPackLoader(samplePacks())
	if pool != nil {
		loader = pgloader.NewPackLoader(pool)
	}

	packTTL := config.TTLDuration(cfg.Pack.TTL, 10*time.Minute)
	var packRepo game.PackRepository
	if redisClient != nil {
		packRepo = redissession.NewPackRepository(redisClient, loader, packTTL)
	} else {
		packRepo = memory.NewPackRepository(loader, packTTL)
	}

	var rooms game.SessionRegistry
	if redisClient != nil {
		rooms = redissession.NewSessionStore(redisClient, redisTTL)
	} else {
		rooms = memory.NewSessionStore()
	}
	service := game.NewTriviaService(rooms, packRepo)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// samplePacks provides a minimal pack for running without Postgres.
func samplePacks() map[string]domain.Pack {
	return map[string]domain.Pack{
		"pack-1": {
			ID: "pack-1",
			Rounds: []domain.Round{
				{
					Title: "General Knowledge",
					Questions: []domain.Question{
						{Text: "What is the capital of Australia?", Answer: "Canberra", Points: 10},
						{Text: "Which planet has the most moons?", Answer: "Saturn", Points: 10},
					},
				},
				{
					Title: "History",
					Questions: []domain.Question{
						{Text: "In what year did the Berlin Wall fall?", Answer: "1989", Points: 10},
					},
				},
			},
		},
	}
}
