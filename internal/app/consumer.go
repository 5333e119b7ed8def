package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka/consumer"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/connection"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/workload"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer keeps the redis workload snapshot cache warm by consuming
// refresh events emitted on every time-log mutation.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	appointmentRepo := appointment.NewRepository(gormDB)
	timeLogRepo := timetracking.NewTimeLogRepository(gormDB)
	workloadService := workload.NewService(employeeRepo, appointmentRepo, timeLogRepo, redisClient)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.WorkloadRefreshTopic,
		GroupID:        "autocare360-workload-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeWorkloadRefresh(ctx, reader, workloadService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
