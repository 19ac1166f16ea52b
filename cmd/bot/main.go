package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"otc-signal-bot/internal/bot"
	"otc-signal-bot/internal/cache"
	"otc-signal-bot/internal/config"
	"otc-signal-bot/internal/db"
	"otc-signal-bot/internal/dialog"
	"otc-signal-bot/internal/handler"
	"otc-signal-bot/internal/job"
	"otc-signal-bot/internal/repository"
	"otc-signal-bot/internal/service"
	signalgen "otc-signal-bot/internal/signal"
	"otc-signal-bot/internal/session"
	"otc-signal-bot/internal/storage"
	"otc-signal-bot/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newSignalLogRepoFunc = repository.NewSignalLogRepository
	newSessionReaperFunc = job.NewSessionReaper
	startReaperFunc      = func(r *job.SessionReaper, ctx context.Context) { go r.Start(ctx) }
	startTelegramBotFunc = bot.StartTelegramBot
	newRouterFunc        = gin.Default
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := initPostgresFunc(ctx, cfg.DatabaseURL)
	redisClient := initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	sessionTTL := time.Duration(cfg.SessionTTLSecs) * time.Second

	var batchRepo service.BatchRepository
	var history handler.BatchLister
	if pool != nil {
		repo := newSignalLogRepoFunc(pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run signal log migrations: %v", err)
		}
		batchRepo = repo
		history = repo
	}

	var persister session.Persister
	if redisClient != nil {
		persister = session.NewRedisPersister(redisClient, sessionTTL)
	}
	store := session.NewStore(persister)

	alerts := bot.NewAlertDispatcher(nil)
	generator := signalgen.NewGenerator(nil)
	signalService := service.NewSignalService(tracer, generator, batchRepo, alerts, cfg.SignalTimezone)

	fileStore := storage.NewFileStore(cfg.SignalsDir)
	dialogRouter := dialog.NewRouter(store, signalService, fileStore, cfg.AdminPassword, cfg.SignalTimezone, tracer)

	reaper := newSessionReaperFunc(tracer, store, sessionTTL, time.Duration(cfg.SessionSweepSecs)*time.Second)
	startReaperFunc(reaper, ctx)

	startTelegramBotFunc(cfg.TelegramBotToken, dialogRouter, alerts)

	h := handler.New(tracer, history, store)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("otc-signal-bot"))
	r.Use(cors.Default())
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    httpAddrFromEnv(),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddrFromEnv() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
