package jobs

import (
	"context"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultStatsSpec runs the stats job at the top of every minute. The spec
// format includes a seconds field.
const DefaultStatsSpec = "0 * * * * *"

// OrderStatsJob periodically logs per-status order counts. It gives
// operators a running view of the store without an external metrics
// backend.
type OrderStatsJob struct {
	handler queries.GetOrderStatsQueryHandler
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewOrderStatsJob creates the stats job. An empty spec falls back to
// DefaultStatsSpec.
func NewOrderStatsJob(handler queries.GetOrderStatsQueryHandler, spec string, logger *zap.Logger) *OrderStatsJob {
	if spec == "" {
		spec = DefaultStatsSpec
	}

	return &OrderStatsJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "order_stats_job")),
	}
}

// Start schedules the job. Returns an error if the cron spec is invalid.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		stats, err := j.handler.Handle(ctx, queries.NewGetOrderStatsQuery())
		if err != nil {
			j.logger.Error("order stats job failed", zap.Error(err))
			return
		}

		total := 0
		for _, count := range stats {
			total += count
		}

		j.logger.Info("order stats",
			zap.Int("total", total),
			zap.Int("pending", stats[order.Pending]),
			zap.Int("paid", stats[order.Paid]),
			zap.Int("shipped", stats[order.Shipped]),
			zap.Int("delivered", stats[order.Delivered]),
		)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order stats job started", zap.String("spec", j.spec))

	return nil
}

// Stop stops the job. Does not wait for an in-flight run.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.Info("order stats job stopped")
}
