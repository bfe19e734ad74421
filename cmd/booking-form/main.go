package main

import (
	"context"

	"assetbook/internal/bookingform/handler"
	"assetbook/internal/bookingform/permissions"
	"assetbook/internal/bookingform/publisher"
	"assetbook/internal/bookingform/repository"
	"assetbook/internal/bookingform/service"
	"assetbook/internal/bookingform/submission"
	"assetbook/internal/bookingform/validator"
	"assetbook/pkg/app"
	"assetbook/pkg/clock"
	"assetbook/pkg/config"
	"assetbook/pkg/kafka"
	kafka_middleware "assetbook/pkg/kafka/middleware"
)

const ServiceName = "booking-form"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Booking Form service")
	serverApp := app.NewApplication(cfg)

	intentPublisher, metrics := initPublisher(cfg, serverApp)
	bookingFormService := initServices(cfg, intentPublisher)

	serverApp.SetApp(
		handler.NewBookingFormHandler(bookingFormService, cfg.Log),
		handler.NewHealthHandler(cfg.Client, metrics, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher connects the intent producer, or falls back to a logging
// publisher when no brokers are configured.
func initPublisher(cfg *config.Config, serverApp *app.Application) (publisher.IntentPublisher, *kafka_middleware.Metrics) {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Warn("KAFKA_BROKERS not set, booking intents will not be published")
		return publisher.NewNoopIntentPublisher(cfg.Log), nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.IntentTopic, cfg.IntentDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create intent producer", "error", err)
	}

	var metrics *kafka_middleware.Metrics
	if cfg.Kafka.EnableMiddleware {
		metrics = &kafka_middleware.Metrics{}
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(metrics))
	}

	serverApp.OnShutdown("intent-producer", func(context.Context) error {
		return producer.Close()
	})

	cfg.Log.Info("Intent producer initialized", "topic", producer.Topic(), "dlq_topic", cfg.IntentDLQTopic)
	return publisher.NewKafkaIntentPublisher(producer, ServiceName), metrics
}

func initServices(cfg *config.Config, intentPublisher publisher.IntentPublisher) service.BookingFormService {
	bookingValidator := validator.NewBookingValidator(cfg.Log, clock.System(), cfg.DefaultLocation)
	bookingReader := repository.NewMongoBookingReader(cfg)
	submitter := submission.NewClient(cfg.SubmitEndpoint, cfg.SubmitTimeout, cfg.Log)

	bookingFormService := service.NewBookingFormService(
		bookingReader,
		bookingValidator,
		submitter,
		intentPublisher,
		permissions.DefaultRoleTable(),
		cfg,
	)

	cfg.Log.Info("Booking form service initialized",
		"database", cfg.MongoDatabaseName,
		"collection", cfg.BookingsCollection,
	)
	return bookingFormService
}
