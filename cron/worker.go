package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"plannerly/config"
	"plannerly/models"
	"plannerly/services/plan"
	"plannerly/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReviewWorker runs the budget review worker and its periodic sweep in
// the background.
func InitReviewWorker(planSvc plan.PlanService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReviewQueueDB,
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
	mux.HandleFunc(tasks.TypeBudgetReview, handleBudgetReview(planSvc))
	mux.HandleFunc(tasks.TypeReviewSweep, handleReviewSweep(planSvc, redisOpts))

	go startSweepScheduler(redisOpts)

	go func() {
		log.Println("[ReviewWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReviewWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReviewWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleBudgetReview recomputes one plan's budget snapshot from its durable
// state and logs any overages.
func handleBudgetReview(planSvc plan.PlanService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReviewPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[BudgetReview] invalid payload: %v", err)
			return err
		}

		session, err := planSvc.RefreshSnapshot(ctx, p.PlanID)
		if err != nil {
			log.Printf("[BudgetReview] failed to refresh snapshot for %s: %v", p.PlanID, err)
			return err
		}

		if session.Snapshot != nil {
			for _, warning := range session.Snapshot.Warnings {
				log.Printf("[BudgetReview] plan %s: %s", session.ID, warning)
			}
		}
		return nil
	}
}

// handleReviewSweep enqueues a review for every session whose snapshot has
// gone stale.
func handleReviewSweep(planSvc plan.PlanService, redisOpts asynq.RedisClientOpt) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		svc, ok := planSvc.(*plan.DefaultPlanService)
		if !ok {
			return nil
		}

		cutoff := time.Now().Add(-sweepInterval())
		sessions, err := svc.Repo.ListActiveBefore(ctx, cutoff, 100)
		if err != nil {
			log.Printf("[ReviewSweep] failed to list stale sessions: %v", err)
			return err
		}

		client := asynq.NewClient(redisOpts)
		defer client.Close()
		queue := tasks.NewAsynqQueue(client)

		for _, session := range sessions {
			if err := queue.EnqueueReview(ctx, session.ID); err != nil {
				log.Printf("[ReviewSweep] failed to enqueue review for %s: %v", session.ID, err)
			}
		}
		log.Printf("[ReviewSweep] enqueued %d reviews", len(sessions))
		return nil
	}
}

// startSweepScheduler registers the periodic sweep task.
func startSweepScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)

	spec := "@every " + sweepInterval().String()
	if _, err := scheduler.Register(spec, tasks.NewReviewSweepTask()); err != nil {
		log.Printf("[ReviewWorker] failed to register sweep schedule: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[ReviewWorker] sweep scheduler stopped: %v", err)
	}
}

func sweepInterval() time.Duration {
	minutes := config.AppConfig.ReviewSweepMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}
