package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/workload"
	workloaderrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/workload/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeWorkloadRefresh recomputes and re-caches a technician's workload
// snapshot for every refresh ping. Events for employees that no longer exist
// are committed and skipped.
func ConsumeWorkloadRefresh(
	ctx context.Context,
	reader *kafkago.Reader,
	workloadService workload.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.workload_refresh")
	log.Info("workload refresh consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("workload refresh consumer stopped")
				return
			}
			log.Error("fetch workload refresh message failed", zap.Error(err))
			continue
		}

		var event events.WorkloadRefreshEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode workload_refresh event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		snap, err := workloadService.RefreshSnapshot(ctx, event.EmployeeID)
		if err != nil {
			if errors.Is(err, workloaderrors.ErrEmployeeNotFound) ||
				errors.Is(err, workloaderrors.ErrInvalidEmployeeID) {
				log.Warn("workload refresh for unknown employee, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("refresh workload snapshot failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit workload refresh message failed", zap.Error(err))
			continue
		}

		log.Info("workload snapshot refreshed from event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", snap.Status),
		)
	}
}
