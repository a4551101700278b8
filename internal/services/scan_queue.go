package services

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/sithub/sithub/internal/config"
	"github.com/sithub/sithub/pkg/logger"
)

const TaskTypeScan = "scan:process"

// ScanTask is one vulnerability scan job.
type ScanTask struct {
	ScanID     uint   `json:"scan_id"`
	ProjectID  uint   `json:"project_id"`
	RepoPath   string `json:"repo_path"`
	CommitHash string `json:"commit_hash"`
}

// ScanProcessor executes one scan task.
type ScanProcessor func(ctx context.Context, task *ScanTask) error

// TaskQueue defines the interface for scan task processing.
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *ScanTask) error
	// IsAsync returns true if the queue processes tasks asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// NewTaskQueue picks the queue implementation from config: Redis-backed
// when enabled and reachable, in-process otherwise.
func NewTaskQueue(cfg *config.RedisConfig) TaskQueue {
	if cfg.Enabled {
		queue, err := NewAsyncQueue(cfg)
		if err != nil {
			logger.Warnf("scan queue: Redis unavailable, falling back to sync mode: %v", err)
			return NewSyncQueue()
		}
		logger.Infof("scan queue: async mode with Redis at %s", cfg.Addr)
		return queue
	}
	logger.Infof("scan queue: sync mode (Redis disabled)")
	return NewSyncQueue()
}

// AsyncQueue implements TaskQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(task *ScanTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeScan, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("scan queue: task enqueued id=%s queue=%s scan_id=%d", info.ID, info.Queue, task.ScanID)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue with in-process execution (no Redis).
type SyncQueue struct {
	processor ScanProcessor
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function used to process tasks in-process.
func (q *SyncQueue) SetProcessor(processor ScanProcessor) {
	q.processor = processor
}

// Enqueue runs the task in a goroutine so the HTTP response is not blocked
// on the scanner.
func (q *SyncQueue) Enqueue(task *ScanTask) error {
	if q.processor == nil {
		logger.Warnf("scan queue: no processor set, task dropped scan_id=%d", task.ScanID)
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Errorf("scan queue: task failed scan_id=%d: %v", task.ScanID, err)
		}
	}()

	return nil
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}
