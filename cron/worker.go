package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"harborview/config"
	"harborview/models"
	"harborview/services/reports"

	"github.com/hibiken/asynq"
)

const TypeReportGenerate = "report:generate"

// JobQueue wraps the asynq client behind a narrow enqueue-only interface.
// Submission is fire-and-forget; nothing here observes job completion.
type JobQueue struct {
	client *asynq.Client
}

// NewJobQueue creates the process-wide job queue client.
func NewJobQueue() *JobQueue {
	return &JobQueue{client: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})}
}

// Enqueue marshals the payload and submits a task of the given type.
func (q *JobQueue) Enqueue(ctx context.Context, taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, b)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	return nil
}

// InitReportWorker runs the async report worker in background.
func InitReportWorker(reportSvc reports.ReportService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReportGenerate, handleReportTask(reportSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReportWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReportWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReportWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReportTask(reportSvc reports.ReportService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReportPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			// A payload that never parsed will never parse; retrying only
			// clogs the queue.
			log.Printf("[ReportHandler] invalid payload, dropping task: %v", err)
			return fmt.Errorf("invalid report payload: %v: %w", err, asynq.SkipRetry)
		}

		log.Printf("[ReportHandler] generating %s report %s..%s for %s", p.ReportType, p.StartDate, p.EndDate, p.UserEmail)

		summary, err := reportSvc.Generate(ctx, p)
		if err != nil {
			log.Printf("[ReportHandler] report generation failed: %v", err)
			return err
		}

		// Delivery itself goes through the mail relay out of band; the worker's
		// job ends once the report is ready for pickup.
		log.Printf("[ReportHandler] %s report ready for %s (%d sections)", p.ReportType, p.UserEmail, len(summary))
		return nil
	}
}
