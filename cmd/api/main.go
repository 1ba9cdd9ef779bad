package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"admitpath/internal/cache"
	"admitpath/internal/config"
	"admitpath/internal/db"
	"admitpath/internal/engine"
	apihttp "admitpath/internal/http"
	"admitpath/internal/metrics"
	"admitpath/internal/repository"
	"admitpath/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	schoolRepo := repository.NewPgSchoolRepository(pool)

	// Los pesos y umbrales se validan acá, una vez; un deploy con pesos
	// rotos no llega a servir ni un request.
	eng, err := engine.NewEngine(engine.Config{
		Weights: engine.Weights{
			Academic: cfg.WeightAcademic,
			Activity: cfg.WeightActivity,
			Award:    cfg.WeightAward,
		},
		ReachUpperBound:   cfg.TierReachMax,
		SafetyLowerBound:  cfg.TierSafetyMin,
		MinReliableSample: cfg.MinReliableSample,
	})
	if err != nil {
		logger.Fatal("engine config", zap.Error(err))
	}

	var predictionCache cache.PredictionCache = cache.NewMemoryPredictionCache()
	var cachePing apihttp.PingFunc
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, usando cache en memoria", zap.Error(err))
		} else {
			predictionCache = cache.NewRedisPredictionCache(redisClient)
			cachePing = func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}
		}
		cancel()
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	predictionSvc := service.NewPredictionService(
		logger,
		profileRepo,
		schoolRepo,
		predictionCache,
		eng,
		recorder,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute,
	)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	predictionHandler := apihttp.NewPredictionHandler(logger, predictionSvc)
	router := apihttp.NewRouter(logger, jwtSvc, predictionHandler, registry, pool.Ping, cachePing)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
