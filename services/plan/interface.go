package plan

import (
	"context"

	planRepo "plannerly/database/repository/plan"
	"plannerly/models"
	"plannerly/services/budget"
	"plannerly/services/conversation"
)

// PlanService manages the lifecycle of a plan session: the intake dialog, the
// vendor selections and the derived budget snapshot.
type PlanService interface {
	CreateSession(ctx context.Context, deviceID string) (*models.PlanSession, string, error)
	GetSession(ctx context.Context, id string) (*models.PlanSession, error)
	AdvanceConversation(ctx context.Context, id, answer string) (*models.PlanSession, string, error)
	AddSelection(ctx context.Context, id string, selection models.VendorSelection) (*models.PlanSession, error)
	RemoveCategory(ctx context.Context, id, category string) (*models.PlanSession, error)
	SetPriorities(ctx context.Context, id string, priorities map[string]float64) (*models.PlanSession, error)
	BudgetSnapshot(ctx context.Context, id, strategy string) (*models.BudgetSnapshot, error)
	RefreshSnapshot(ctx context.Context, id string) (*models.PlanSession, error)
	CancelSession(ctx context.Context, id string) error
}

// ReviewQueue schedules background budget reviews.
type ReviewQueue interface {
	EnqueueReview(ctx context.Context, planID string) error
}

// DefaultPlanService implements PlanService.
type DefaultPlanService struct {
	Repo         planRepo.PlanRepository
	Cache        SessionStore
	Conversation conversation.Service
	Budget       *budget.Engine
	Reviews      ReviewQueue
}
