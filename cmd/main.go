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
	"github.com/redis/go-redis/v9"

	httpctx "github.com/dtroode/udon-shop-server/internal/api/http/context"
	"github.com/dtroode/udon-shop-server/internal/api/http/handler"
	"github.com/dtroode/udon-shop-server/internal/api/http/middleware"
	"github.com/dtroode/udon-shop-server/internal/api/http/router"
	httpServer "github.com/dtroode/udon-shop-server/internal/api/http/server"
	"github.com/dtroode/udon-shop-server/internal/config"
	"github.com/dtroode/udon-shop-server/internal/kv"
	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/provider"
	"github.com/dtroode/udon-shop-server/internal/repository/postgres"
	"github.com/dtroode/udon-shop-server/internal/service"
	storage "github.com/dtroode/udon-shop-server/internal/storage/minio"
	"github.com/dtroode/udon-shop-server/internal/token"
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

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	blobStore := kv.NewRedis(redisClient)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	imageStorage, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize image storage", "error", err)
	}

	tokenManager := token.NewJWT(cfg.Session.Secret)

	authService := service.NewAuth(userRepo, tokenManager, logger)
	catalogService := service.NewCatalog(productRepo, imageStorage, logger)
	orderService := service.NewOrders(orderRepo, productRepo, logger)
	carts := service.NewCarts(blobStore, cfg.Session.CartKey, logger)
	sessions := service.NewSessions(blobStore, cfg.Session.SessionKey, logger)

	if err := catalogService.InitSampleData(ctx); err != nil {
		logger.Error("failed to seed sample data", "error", err)
	}

	var source provider.Source
	if cfg.Mode == config.ModeStatic {
		source = provider.NewFixtureSource()
	} else {
		source = provider.NewStoreSource(productRepo, userRepo, orderRepo)
	}
	dataProvider := provider.New(source, logger)

	ctxMgr := httpctx.NewManager()

	authHandler := handler.NewAuth(authService, sessions, ctxMgr, logger)
	catalogHandler := handler.NewCatalog(dataProvider, catalogService, logger)
	cartHandler := handler.NewCart(carts, catalogService, ctxMgr, logger)
	orderHandler := handler.NewOrder(orderService, carts, ctxMgr, logger)
	authenticate := middleware.NewAuthenticate(tokenManager, ctxMgr, logger)

	r := router.New(authHandler, catalogHandler, cartHandler, orderHandler, authenticate, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.TLSConfig{
		Enabled:      cfg.HTTP.EnableHTTPS,
		CertFileName: cfg.HTTP.CertFileName,
		KeyFileName:  cfg.HTTP.PrivateKeyFileName,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address(), "mode", cfg.Mode)
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
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
