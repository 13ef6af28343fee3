package tasks

import (
	"context"
	"encoding/json"

	"plannerly/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeBudgetReview recomputes one plan session's budget snapshot.
	TypeBudgetReview = "budget:review"
	// TypeReviewSweep enqueues reviews for sessions with stale snapshots.
	TypeReviewSweep = "budget:sweep"
)

func NewBudgetReviewTask(payload models.ReviewPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBudgetReview, b), nil
}

func NewReviewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeReviewSweep, nil)
}

// AsynqQueue enqueues review tasks onto the shared asynq queue.
type AsynqQueue struct {
	Client *asynq.Client
}

func NewAsynqQueue(client *asynq.Client) *AsynqQueue {
	return &AsynqQueue{Client: client}
}

// EnqueueReview schedules a background budget review for the given plan.
func (q *AsynqQueue) EnqueueReview(ctx context.Context, planID string) error {
	task, err := NewBudgetReviewTask(models.ReviewPayload{PlanID: planID})
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	return err
}
