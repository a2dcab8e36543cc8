package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrimart-be/internal/address"
	"agrimart-be/internal/audit"
	"agrimart-be/internal/auth"
	"agrimart-be/internal/cache"
	"agrimart-be/internal/cart"
	"agrimart-be/internal/category"
	"agrimart-be/internal/config"
	"agrimart-be/internal/db"
	"agrimart-be/internal/events"
	"agrimart-be/internal/handler"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/middleware"
	"agrimart-be/internal/order"
	"agrimart-be/internal/payment"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	backendTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := connectBackends(ctx, cfg)
	defer b.close()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey, handler.PathLogin, handler.PathVerify)
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, b, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// backends holds the optional infrastructure; each one falls back to a no-op when unset or unreachable.
type backends struct {
	cache     cache.Store
	publisher events.Publisher
	auditor   audit.Recorder
	closers   []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func connectBackends(ctx context.Context, cfg *config.Config) *backends {
	log := logger.L()
	b := &backends{
		cache:     cache.Noop{},
		publisher: events.Noop{},
		auditor:   audit.Noop{},
	}

	if cfg.RedisAddr != "" {
		store := cache.NewRedisStore(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, backendTimeout)
		err := store.Ping(pingCtx)
		cancel()

		if err != nil {
			log.Warn("redis unavailable, product cache disabled", zap.Error(err))
			_ = store.Close()
		} else {
			b.cache = store
			b.closers = append(b.closers, func() { _ = store.Close() })
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, backendTimeout)
			err = pub.Ping(pingCtx)
			cancel()
			if err != nil {
				pub.Close()
			}
		}

		if err != nil {
			log.Warn("kafka unavailable, order events disabled", zap.Error(err))
		} else {
			b.publisher = pub
			b.closers = append(b.closers, pub.Close)
		}
	}

	if cfg.MongoURI != "" {
		rec, err := audit.NewMongoRecorder(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, backendTimeout)
			err = rec.Ping(pingCtx)
			cancel()
		}

		if err != nil {
			log.Warn("mongo unavailable, payment audit disabled", zap.Error(err))
			if rec != nil {
				closeCtx, cancel := context.WithTimeout(context.Background(), backendTimeout)
				_ = rec.Close(closeCtx)
				cancel()
			}
		} else {
			b.auditor = rec
			b.closers = append(b.closers, func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), backendTimeout)
				defer cancel()
				_ = rec.Close(closeCtx)
			})
		}
	}

	return b
}

func newServer(cfg *config.Config, database *sql.DB, b *backends, limiter *middleware.RateLimiter) http.Handler {
	tokens := auth.NewTokens(cfg.JWTSecret, auth.DefaultTTL)

	categorySvc := category.NewService(category.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database), categorySvc, b.cache, cfg.CacheTTL)
	addressSvc := address.NewService(address.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(database), productSvc)
	userSvc := user.NewService(user.NewRepository(database), tokens, cfg.SellerEmails)

	gateway := payment.NewRazorpayGateway(payment.RazorpayConfig{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Timeout:   cfg.PaymentTimeout,
	})
	orderSvc := order.NewService(
		order.NewRepository(database),
		addressSvc,
		productSvc,
		gateway,
		b.publisher,
		b.auditor,
	)

	return handler.API(handler.Services{
		Users:      userSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Addresses:  addressSvc,
		Carts:      cartSvc,
		Orders:     orderSvc,
	}, handler.Options{
		Tokens:       tokens,
		Limiter:      limiter,
		CORSOrigin:   cfg.CORSOrigin,
		SecureCookie: cfg.AppEnv == "production",
	})
}
