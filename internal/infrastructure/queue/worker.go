package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/application/ports"
)

// Worker runs asynq task handlers for queued side effects. Currently that is
// risk alert delivery to the configured webhook endpoint.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.EventEmitter
	log     zerolog.Logger
}

// NewWorker creates an asynq server and registers handlers. Call Run to start.
func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.EventEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, emitter: emitter, log: log}
	mux.HandleFunc(TypeRiskAlert, w.handleRiskAlert)
	return w
}

func (w *Worker) handleRiskAlert(ctx context.Context, t *asynq.Task) error {
	var alert ports.RiskAlert
	if err := json.Unmarshal(t.Payload(), &alert); err != nil {
		w.log.Error().Err(err).Msg("risk alert task payload invalid")
		return err
	}
	if err := w.emitter.Emit(ctx, alert); err != nil {
		w.log.Warn().
			Err(err).
			Str("asset_id", alert.AssetID).
			Str("risk_level", alert.RiskLevel).
			Msg("risk alert delivery failed")
		return err
	}
	w.log.Info().
		Str("asset_id", alert.AssetID).
		Str("risk_level", alert.RiskLevel).
		Msg("risk alert delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
