package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
)

// TypeRiskAlert is the task type for out-of-band risk reclassification
// delivery.
const TypeRiskAlert = "governance:risk_alert"

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// EnqueueRiskAlert queues delivery of a risk reclassification alert. The
// caller treats failure as a side-effect failure and continues.
func (q *TaskEnqueuer) EnqueueRiskAlert(ctx context.Context, alert ports.RiskAlert) error {
	payload, _ := json.Marshal(alert)
	task := asynq.NewTask(TypeRiskAlert, payload, asynq.MaxRetry(5))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("asset_id", alert.AssetID).Msg("enqueue risk alert failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
