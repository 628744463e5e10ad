package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaarlink/cmd"
	"bazaarlink/internal/adapters/out/livepush"
	"bazaarlink/internal/adapters/out/postgres/agentrepo"
	"bazaarlink/internal/adapters/out/postgres/deliveryrepo"
	"bazaarlink/internal/adapters/out/postgres/notificationrepo"
	"bazaarlink/internal/adapters/out/postgres/orderrepo"
	"bazaarlink/internal/adapters/out/postgres/shoprepo"
	"bazaarlink/internal/adapters/out/postgres/trackaccess"
	"bazaarlink/internal/adapters/out/rabbitmq"
	"bazaarlink/internal/core/domain/events"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := mustOpenDatabase(config)

	broker, err := rabbitmq.NewClient(config.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer broker.Close()

	publisher := rabbitmq.NewPublisher(broker, logger)
	hub := livepush.NewHub(
		[]byte(config.JWTSecret),
		trackaccess.NewGormTrackAccessPolicy(db),
		logger,
	)

	root := cmd.NewCompositionRoot(db, publisher, hub, logger)

	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	startLiveBridge(consumerCtx, &root, broker, logger)

	jobManager := root.CreateJobManager()
	if config.AutoAssignEnabled {
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	e := echo.New()
	e.HideBanner = true
	root.CreateHTTPServer(hub).RegisterRoutes(e)

	go func() {
		startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
		if startErr != nil && !errors.Is(startErr, nethttp.ErrServerClosed) {
			log.Fatalf("Web server failed: %v", startErr)
		}
	}()

	waitForShutdown(e, logger)
}

func mustOpenDatabase(config cmd.Config) *gorm.DB {
	db, err := gorm.Open(postgresdriver.Open(config.DBConnString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&deliveryrepo.DeliveryDTO{},
		&agentrepo.AgentDTO{},
		&shoprepo.ShopDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

// startLiveBridge binds one durable queue per topic the bridge consumes and
// runs each consumer until shutdown.
func startLiveBridge(ctx context.Context, root *cmd.CompositionRoot, broker *rabbitmq.Client, logger *slog.Logger) {
	bridge := root.CreateLiveBridge()

	bindings := []struct {
		queue   string
		topic   string
		handler rabbitmq.Handler
	}{
		{"delivery-core.live.delivery_assigned", events.TopicDeliveryAssigned, bridge.HandleDeliveryAssigned},
		{"delivery-core.live.delivery_status_updated", events.TopicDeliveryStatusUpdated, bridge.HandleDeliveryStatusUpdated},
	}

	for _, binding := range bindings {
		consumer, err := rabbitmq.NewConsumer(broker, binding.queue, binding.topic, logger)
		if err != nil {
			log.Fatalf("Failed to create consumer for %s: %v", binding.topic, err)
		}

		go func(consumer *rabbitmq.Consumer, handler rabbitmq.Handler, topic string) {
			defer consumer.Close()
			if runErr := consumer.Run(ctx, handler); runErr != nil {
				logger.Error("consumer stopped", "topic", topic, "error", runErr)
			}
		}(consumer, binding.handler, binding.topic)
	}
}

func waitForShutdown(e *echo.Echo, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}
