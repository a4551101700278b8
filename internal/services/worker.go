package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/sithub/sithub/internal/config"
	"github.com/sithub/sithub/pkg/logger"
)

// Worker consumes scan tasks from the Redis queue.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor ScanProcessor
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

func NewWorker(cfg *config.RedisConfig) *Worker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Errorf("scan worker: error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// SetProcessor sets the function used to process scan tasks.
func (w *Worker) SetProcessor(processor ScanProcessor) {
	w.processor = processor
}

// Start begins consuming tasks.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeScan, w.handleScanTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("scan worker: starting")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("scan worker: server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("scan worker: shutting down")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Infof("scan worker: shutdown complete")
}

func (w *Worker) handleScanTask(ctx context.Context, t *asynq.Task) error {
	var task ScanTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Errorf("scan worker: failed to unmarshal task: %v", err)
		return err
	}

	logger.Infof("scan worker: processing scan_id=%d project_id=%d commit=%s",
		task.ScanID, task.ProjectID, task.CommitHash)

	if w.processor == nil {
		logger.Warnf("scan worker: no processor set")
		return nil
	}

	return w.processor(ctx, &task)
}
