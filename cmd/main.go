package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/barii/chat-directory/internal/api/http/context"
	"github.com/barii/chat-directory/internal/api/http/router"
	httpServer "github.com/barii/chat-directory/internal/api/http/server"
	"github.com/barii/chat-directory/internal/auth"
	"github.com/barii/chat-directory/internal/config"
	"github.com/barii/chat-directory/internal/events"
	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
	"github.com/barii/chat-directory/internal/model"
	"github.com/barii/chat-directory/internal/repository/postgres"
	"github.com/barii/chat-directory/internal/server"
	"github.com/barii/chat-directory/internal/service"
	"github.com/barii/chat-directory/internal/session"
	storage "github.com/barii/chat-directory/internal/storage/minio"
	"github.com/barii/chat-directory/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	roomRepo := postgres.NewChatRoomRepository(db)

	sessionStore, err := session.Connect(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer sessionStore.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	var publisher model.UpdatePublisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.Connect(cfg.NATS.URL, "chat-directory")
		if err != nil {
			logger.Fatal("failed to connect to nats", "error", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := httpctx.NewManager()

	accountProvider := auth.NewProvider(accountRepo, logger)
	profileService := service.NewProfile(profileRepo, publisher, logger)
	directoryService := service.NewDirectory(profileRepo, roomRepo, publisher, logger)
	imageService := service.NewImage(storageClient, profileService, logger)
	sessionService := service.NewSession(
		accountProvider,
		profileService,
		directoryService,
		imageService,
		sessionStore,
		tokenManager,
		logger,
	)

	metrics.Register()

	apiServer := registerHTTPServer(sessionService, tokenManager, ctxMgr, logger, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	sessionService *service.Session,
	tokenManager model.TokenManager,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
	addr string,
) *httpServer.HTTPServer {
	r := router.New(sessionService, tokenManager, ctxMgr, logger)

	return httpServer.NewHTTPServer(r.Register(), addr)
}
