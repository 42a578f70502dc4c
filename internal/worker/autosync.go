package worker

import (
	"context"
	"sync"
	"time"

	"github.com/thankimquy/FOODORDER/internal/queue"
	"go.uber.org/zap"
)

// Exporter writes the full current store to an external file.
type Exporter interface {
	ExportExcelFile(ctx context.Context, path string) error
}

// AutoSyncWorker mirrors the store into an external excel file. It subscribes
// to store events and keeps a single pending debounce timer: a new mutation
// supersedes a scheduled write rather than queueing behind it, so only the
// latest state is ever written. Write failures are logged and dropped; the
// next mutation schedules a fresh attempt.
type AutoSyncWorker struct {
	exporter Exporter
	broker   queue.Broker
	logger   *zap.SugaredLogger
	path     string
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc

	mu    sync.Mutex
	timer *time.Timer
}

func NewAutoSyncWorker(
	exporter Exporter,
	broker queue.Broker,
	path string,
	debounce time.Duration,
	logger *zap.SugaredLogger,
) *AutoSyncWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &AutoSyncWorker{
		exporter: exporter,
		broker:   broker,
		logger:   logger,
		path:     path,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *AutoSyncWorker) Start() error {
	if w.path == "" {
		w.logger.Info("auto-sync disabled, no sync file configured")
		return nil
	}

	w.logger.Infow("starting auto-sync worker", "path", w.path, "debounce", w.debounce)

	return w.broker.Subscribe(w.ctx, queue.QueueStoreEvents, w.handleMessage)
}

func (w *AutoSyncWorker) Stop() {
	w.logger.Info("stopping auto-sync worker")
	w.cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *AutoSyncWorker) handleMessage(ctx context.Context, message []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// supersede any pending write, only the quiet-period state gets flushed
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)

	return nil
}

func (w *AutoSyncWorker) flush() {
	if w.ctx.Err() != nil {
		return
	}

	if err := w.exporter.ExportExcelFile(w.ctx, w.path); err != nil {
		w.logger.Warnw("auto-sync write failed", "path", w.path, "error", err)
		return
	}

	w.logger.Infow("store auto-synced", "path", w.path)
}
