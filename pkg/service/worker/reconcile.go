package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/errutil"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

// Reconciler finds and optionally repairs classification drift
type Reconciler interface {
	Run(ctx context.Context, fix bool) ([]usecase.Drift, error)
}

// ReconcileWorker periodically repairs systems whose risk classification
// no longer matches their latest EU assessment.
// It assumes a single server instance.
type ReconcileWorker struct {
	reconciler Reconciler
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

func NewReconcileWorker(reconciler Reconciler, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		reconciler: reconciler,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background loop without blocking server startup
func (w *ReconcileWorker) Start(ctx context.Context) {
	logging.Default().Info("Reconcile worker starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for the current cycle to finish
func (w *ReconcileWorker) Stop() {
	logging.Default().Info("Reconcile worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Reconcile worker stopped")
}

func (w *ReconcileWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.reconcile(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reconcile(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Reconcile worker context cancelled")
			return
		}
	}
}

// reconcile runs one cycle; failures are reported and retried next interval
func (w *ReconcileWorker) reconcile(ctx context.Context) {
	start := time.Now()
	drifts, err := w.reconciler.Run(ctx, true)
	if err != nil {
		_ = errutil.Handle(ctx, err, "reconcile cycle failed (will retry next interval)")
		return
	}

	if len(drifts) > 0 {
		logging.Default().Warn("Reconcile repaired classifications",
			"count", len(drifts),
			"duration", time.Since(start).String())
	}
}
