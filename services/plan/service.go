package plan

import (
	"context"
	"fmt"
	"time"

	"plannerly/models"
	"plannerly/services/budget"
	"plannerly/utils"

	"go.uber.org/zap"
)

// StrategyPriority selects the priority-weight advisor for snapshot
// recommendations; anything else uses the event-type template advisor.
const StrategyPriority = "priority"

// CreateSession starts a fresh plan session on the first intake state and
// returns it together with the first question.
func (s *DefaultPlanService) CreateSession(ctx context.Context, deviceID string) (*models.PlanSession, string, error) {
	first, question := s.Conversation.Start()
	session := models.PlanSession{
		DeviceID: deviceID,
		State:    first,
	}
	greeting := s.Conversation.Greeting()
	now := time.Now()
	session.History = append(session.History,
		models.Message{Role: "assistant", Text: greeting, State: models.StateInitial, At: now},
		models.Message{Role: "assistant", Text: question, State: first, At: now},
	)

	id, err := s.Repo.Create(ctx, session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create plan session: %w", err)
	}
	created, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load created plan session: %w", err)
	}
	s.cacheSession(ctx, created)
	return created, question, nil
}

// GetSession loads a session, preferring the cache over Mongo.
func (s *DefaultPlanService) GetSession(ctx context.Context, id string) (*models.PlanSession, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	session, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("plan session %s not found: %w", id, err)
	}
	s.cacheSession(ctx, session)
	return session, nil
}

// AdvanceConversation records an intake answer, advances the dialog,
// recomputes the budget snapshot against the updated profile and persists
// the session.
func (s *DefaultPlanService) AdvanceConversation(ctx context.Context, id, answer string) (*models.PlanSession, string, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, "", err
	}

	prompt := s.Conversation.Advance(session, answer)
	s.recomputeSnapshot(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, "", err
	}
	return session, prompt, nil
}

// AddSelection appends a vendor selection and recomputes the snapshot from
// scratch over the full selection set.
func (s *DefaultPlanService) AddSelection(ctx context.Context, id string, selection models.VendorSelection) (*models.PlanSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Selections = append(session.Selections, selection)
	s.recomputeSnapshot(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	s.scheduleReview(ctx, session.ID)
	return session, nil
}

// RemoveCategory drops every selection for the given category.
func (s *DefaultPlanService) RemoveCategory(ctx context.Context, id, category string) (*models.PlanSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := session.Selections[:0]
	for _, sel := range session.Selections {
		if sel.Category != category {
			kept = append(kept, sel)
		}
	}
	session.Selections = kept
	s.recomputeSnapshot(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	s.scheduleReview(ctx, session.ID)
	return session, nil
}

// SetPriorities replaces the per-category priority weights.
func (s *DefaultPlanService) SetPriorities(ctx context.Context, id string, priorities map[string]float64) (*models.PlanSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Priorities = priorities
	s.recomputeSnapshot(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	s.scheduleReview(ctx, session.ID)
	return session, nil
}

// BudgetSnapshot returns the current derived budget view. The stored snapshot
// carries template-policy recommendations; asking for the priority strategy
// recomputes the advice with the session's priority weights.
func (s *DefaultPlanService) BudgetSnapshot(ctx context.Context, id, strategy string) (*models.BudgetSnapshot, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := s.buildSnapshot(session)
	if strategy == StrategyPriority && len(session.Priorities) > 0 {
		advisor := budget.PriorityAdvisor{Priorities: session.Priorities}
		snapshot.Recommendations = advisor.Advise(session.Profile.TotalBudget, session.Selections)
	}
	return snapshot, nil
}

// RefreshSnapshot recomputes and persists the snapshot. Used by the review
// worker; bypasses the cache so a stale entry cannot mask new data.
func (s *DefaultPlanService) RefreshSnapshot(ctx context.Context, id string) (*models.PlanSession, error) {
	session, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("plan session %s not found: %w", id, err)
	}
	s.recomputeSnapshot(session)
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession removes the session and its cache entry.
func (s *DefaultPlanService) CancelSession(ctx context.Context, id string) error {
	if s.Cache != nil {
		if err := s.Cache.Clear(ctx, id); err != nil {
			utils.GetLogger().Warn("failed to clear session cache", zap.String("planId", id), zap.Error(err))
		}
	}
	return s.Repo.DeleteByID(ctx, id)
}

// recomputeSnapshot rebuilds the derived budget view from scratch: a fresh
// template allocation followed by exactly one reallocation pass over the full
// selection set. Never chained, so repeated recomputes cannot drift.
func (s *DefaultPlanService) recomputeSnapshot(session *models.PlanSession) {
	session.Snapshot = s.buildSnapshot(session)
}

func (s *DefaultPlanService) buildSnapshot(session *models.PlanSession) *models.BudgetSnapshot {
	total := session.Profile.TotalBudget
	base := s.Budget.Allocate(total, session.Profile.EventType)
	allocation := s.Budget.Reallocate(base, session.Selections, total)
	spent := budget.TotalSpent(session.Selections)

	return &models.BudgetSnapshot{
		Allocation:      allocation,
		Spent:           spent,
		Available:       total - spent,
		Warnings:        s.Budget.OverageWarnings(base, session.Selections),
		Recommendations: s.Budget.Recommendations(total, session.Selections, session.Profile.EventType),
		UpdatedAt:       time.Now(),
	}
}

func (s *DefaultPlanService) persist(ctx context.Context, session *models.PlanSession) error {
	if err := s.Repo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to persist plan session: %w", err)
	}
	s.cacheSession(ctx, session)
	return nil
}

func (s *DefaultPlanService) cacheSession(ctx context.Context, session *models.PlanSession) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, session); err != nil {
		utils.GetLogger().Warn("failed to cache plan session", zap.String("planId", session.ID), zap.Error(err))
	}
}

func (s *DefaultPlanService) scheduleReview(ctx context.Context, planID string) {
	if s.Reviews == nil {
		return
	}
	if err := s.Reviews.EnqueueReview(ctx, planID); err != nil {
		utils.GetLogger().Warn("failed to enqueue budget review", zap.String("planId", planID), zap.Error(err))
	}
}
