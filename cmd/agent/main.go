package main

import (
	"context"
	"errors"

	"stayease/internal/bookings/handler"
	"stayease/internal/bookings/service"
	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/invalidation"
	"stayease/internal/session"
	"stayease/pkg/app"
	"stayease/pkg/client"
	"stayease/pkg/config"
	"stayease/pkg/kafka"
)

const ServiceName = "stayease-agent"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting StayEase agent", "api", cfg.APIBaseURL)

	serverApp := app.NewApplication()

	sess := session.NewManager(cfg.Log.Component("session"))
	upstream := client.NewClient(cfg.APIBaseURL, cfg.APITimeout,
		client.WithTokenSource(sess),
		client.WithUnauthorizedNotifier(sess),
		client.WithLogger(cfg.Log.Component("client")),
	)
	store := cache.NewStore(cfg.Log.Component("cache"), cfg.CacheTTL, cfg.CacheCleanupInterval)

	publisher, metrics := initInvalidation(cfg, store, serverApp)

	bookingValidator := validator.NewBookingValidator(cfg.Log, validator.WithStrictCheckInDate(cfg.StrictCheckInDate))
	sessions := service.NewSessionService(upstream, store, sess, bookingValidator, cfg)
	bookings := service.NewBookingService(upstream, store, sess, publisher, bookingValidator, cfg)
	properties := service.NewPropertyService(upstream, store, sess, publisher, cfg)
	inquiries := service.NewInquiryService(upstream, store, sess, validator.NewInquiryValidator(cfg.Log), cfg)
	listings := service.NewListingService(upstream, store, sess, publisher, validator.NewListingValidator(cfg.Log), cfg)

	router := &handler.Router{
		Sessions:   handler.NewSessionHandler(sessions, cfg.Log),
		Properties: handler.NewPropertyHandler(properties, cfg.DefaultPageSize, cfg.MaxPageSize, cfg.Log),
		Bookings:   handler.NewBookingHandler(bookings, cfg.DefaultPageSize, cfg.MaxPageSize, cfg.Log),
		Inquiries:  handler.NewInquiryHandler(inquiries, cfg.Log),
		Listings:   handler.NewListingHandler(listings, cfg.Log),
		Auth:       sess,
	}

	serverApp.OnShutdown(store.Stop)
	serverApp.OnShutdown(sess.Close)
	serverApp.OnShutdown(sessions.Close)
	serverApp.SetApp(cfg, handler.NewHealthHandler(upstream, metrics, cfg.Log), router)
	serverApp.Run()
}

// initInvalidation starts the Kafka bridge when brokers are configured.
// Without brokers mutations only invalidate the local cache.
func initInvalidation(cfg *config.Config, store *cache.Store, serverApp *app.Application) (invalidation.Publisher, handler.MetricsSource) {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, cache invalidation stays local")
		return invalidation.Nop{}, nil
	}

	log := cfg.Log.Component("invalidation")
	bridge, err := invalidation.NewBridge(cfg.Kafka, store, cfg.Kafka.GroupID, log)
	if err != nil {
		cfg.Log.Fatal("Failed to start invalidation bridge", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, kafka.ErrConsumerClosed) {
			log.Error("Invalidation consumer stopped", "error", err)
		}
	}()
	serverApp.OnShutdown(func() {
		cancel()
		if err := bridge.Close(); err != nil {
			log.Error("Failed to close invalidation bridge", "error", err)
		}
	})

	cfg.Log.Info("Invalidation bridge started", "topic", cfg.Kafka.InvalidationTopic, "brokers", cfg.Kafka.Brokers)
	return bridge, bridge
}
