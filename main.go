package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/payments-portal/api"
	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/config"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/metrics"
	"github.com/carson-networks/payments-portal/internal/operator"
	"github.com/carson-networks/payments-portal/internal/service"
	"github.com/carson-networks/payments-portal/internal/storage"
)

func main() {
	logrus.Info("payments-portal starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logger := logging.SetupLogging(envConfig.LogLevel)

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	operators := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, m, logger)
	operators.Start()
	defer operators.Stop()

	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if envConfig.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     envConfig.RedisAddress,
			Password: envConfig.RedisPassword,
			DB:       envConfig.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Fatal("redis.Ping")
			return
		}
		revoker = auth.NewRedisRevoker(client)
	}

	tokens := auth.NewTokens(envConfig.JWTSecret, envConfig.JWTIssuer, envConfig.TokenTTL)
	svc := service.NewService(dbStorage, operators, tokens, revoker, m)

	if envConfig.BootstrapAdminEmail != "" {
		created, err := svc.Auth.EnsureAdmin(ctx, envConfig.BootstrapAdminEmail, envConfig.BootstrapAdminPassword)
		if err != nil {
			logger.WithError(err).Fatal("service.EnsureAdmin")
			return
		}
		logger.WithFields(logrus.Fields{
			"email":   envConfig.BootstrapAdminEmail,
			"created": created,
		}).Info("bootstrap admin ready")
	}

	httpRest := api.Rest{
		Logger:             logger,
		Port:               envConfig.Port,
		Service:            svc,
		Storage:            dbStorage,
		Metrics:            m,
		CORSAllowedOrigins: envConfig.CORSAllowedOrigins,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpRest.Serve(groupCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("payments-portal stopped")
		return
	}
	logger.Info("payments-portal stopped")
}
