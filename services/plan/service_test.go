package plan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"plannerly/models"
	"plannerly/services/budget"
	"plannerly/services/conversation"

	"github.com/google/uuid"
)

// fakePlanRepo is an in-memory PlanRepository.
type fakePlanRepo struct {
	sessions map[string]models.PlanSession
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{sessions: make(map[string]models.PlanSession)}
}

func (r *fakePlanRepo) Create(ctx context.Context, session models.PlanSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = session
	return session.ID, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id string) (*models.PlanSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := session
	return &copied, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, session *models.PlanSession) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return errors.New("not found")
	}
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakePlanRepo) DeleteByID(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return errors.New("not found")
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakePlanRepo) ListActiveBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PlanSession, error) {
	var out []models.PlanSession
	for _, session := range r.sessions {
		if session.UpdatedAt.Before(cutoff) && int64(len(out)) < limit {
			out = append(out, session)
		}
	}
	return out, nil
}

// fakeReviewQueue records enqueued plan IDs.
type fakeReviewQueue struct {
	enqueued []string
}

func (q *fakeReviewQueue) EnqueueReview(ctx context.Context, planID string) error {
	q.enqueued = append(q.enqueued, planID)
	return nil
}

func newTestService() (*DefaultPlanService, *fakePlanRepo, *fakeReviewQueue) {
	repo := newFakePlanRepo()
	queue := &fakeReviewQueue{}
	svc := &DefaultPlanService{
		Repo:         repo,
		Conversation: conversation.NewDefaultService(conversation.NewFlow()),
		Budget:       budget.NewEngine(),
		Reviews:      queue,
	}
	return svc, repo, queue
}

func priceOf(v float64) *float64 { return &v }

func runIntake(t *testing.T, svc *DefaultPlanService, id string) {
	t.Helper()
	ctx := context.Background()
	for _, answer := range []string{"wedding", "120 guests", "$1,000", "Lisbon", "next June", "rustic"} {
		if _, _, err := svc.AdvanceConversation(ctx, id, answer); err != nil {
			t.Fatalf("AdvanceConversation(%q) failed: %v", answer, err)
		}
	}
}

func TestCreateSession_StartsDialogAtFirstIntakeState(t *testing.T) {
	svc, _, _ := newTestService()

	session, prompt, err := svc.CreateSession(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.State != models.StateEventType {
		t.Errorf("state = %s, want EVENT_TYPE", session.State)
	}
	if !strings.Contains(prompt, "type of event") {
		t.Errorf("opening prompt should ask for the event type, got %q", prompt)
	}
	if len(session.History) != 2 {
		t.Errorf("history should hold greeting plus first question, got %d entries", len(session.History))
	}
}

func TestAdvanceConversation_FullIntakeBuildsSnapshot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	runIntake(t, svc, session.ID)

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.State != models.StatePlanning {
		t.Errorf("state = %s, want PLANNING", got.State)
	}
	if got.Snapshot == nil {
		t.Fatal("expected a budget snapshot after intake")
	}
	if got.Snapshot.Allocation["venue"] != 300 {
		t.Errorf("venue allocation = %v, want 300", got.Snapshot.Allocation["venue"])
	}
}

func TestAddSelection_RecomputeIsChainFree(t *testing.T) {
	svc, repo, queue := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	runIntake(t, svc, session.ID)

	if _, err := svc.AddSelection(ctx, session.ID, models.VendorSelection{
		Category: "venue", VendorName: "Quinta do Vale", Price: priceOf(200),
	}); err != nil {
		t.Fatalf("AddSelection failed: %v", err)
	}

	first, _ := repo.GetByID(ctx, session.ID)
	venueAfterFirst := first.Snapshot.Allocation["venue"]

	// Refreshing over the same selection set must not subtract again.
	if _, err := svc.RefreshSnapshot(ctx, session.ID); err != nil {
		t.Fatalf("RefreshSnapshot failed: %v", err)
	}
	second, _ := repo.GetByID(ctx, session.ID)
	if second.Snapshot.Allocation["venue"] != venueAfterFirst {
		t.Errorf("snapshot drifted on refresh: %v -> %v",
			venueAfterFirst, second.Snapshot.Allocation["venue"])
	}

	if len(queue.enqueued) != 1 || queue.enqueued[0] != session.ID {
		t.Errorf("expected one review enqueued for the plan, got %v", queue.enqueued)
	}
}

func TestAddSelection_OverageSurfacesInSnapshot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	runIntake(t, svc, session.ID)

	updated, err := svc.AddSelection(ctx, session.ID, models.VendorSelection{
		Category: "venue", Price: priceOf(450), // over the 300 allocation
	})
	if err != nil {
		t.Fatalf("AddSelection failed: %v", err)
	}
	if len(updated.Snapshot.Warnings) != 1 {
		t.Fatalf("expected one overage warning, got %v", updated.Snapshot.Warnings)
	}
	if !strings.Contains(updated.Snapshot.Warnings[0], "venue") ||
		!strings.Contains(updated.Snapshot.Warnings[0], "$150.00") {
		t.Errorf("warning = %q", updated.Snapshot.Warnings[0])
	}
}

func TestRemoveCategory_DropsAllSelectionsForCategory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	runIntake(t, svc, session.ID)

	_, _ = svc.AddSelection(ctx, session.ID, models.VendorSelection{Category: "venue", Price: priceOf(100)})
	_, _ = svc.AddSelection(ctx, session.ID, models.VendorSelection{Category: "venue", Price: priceOf(50)})
	_, _ = svc.AddSelection(ctx, session.ID, models.VendorSelection{Category: "music", Price: priceOf(60)})

	updated, err := svc.RemoveCategory(ctx, session.ID, "venue")
	if err != nil {
		t.Fatalf("RemoveCategory failed: %v", err)
	}
	if len(updated.Selections) != 1 || updated.Selections[0].Category != "music" {
		t.Errorf("selections after removal = %v", updated.Selections)
	}
}

func TestBudgetSnapshot_PriorityStrategy(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	runIntake(t, svc, session.ID)

	if _, err := svc.SetPriorities(ctx, session.ID, map[string]float64{"venue": 3, "music": 1}); err != nil {
		t.Fatalf("SetPriorities failed: %v", err)
	}

	snapshot, err := svc.BudgetSnapshot(ctx, session.ID, StrategyPriority)
	if err != nil {
		t.Fatalf("BudgetSnapshot failed: %v", err)
	}
	if len(snapshot.Recommendations) == 0 ||
		!strings.Contains(snapshot.Recommendations[0], "under budget") {
		t.Errorf("priority strategy should lead with the budget report, got %v", snapshot.Recommendations)
	}

	// Default strategy keeps the template advice.
	snapshot, err = svc.BudgetSnapshot(ctx, session.ID, "")
	if err != nil {
		t.Fatalf("BudgetSnapshot failed: %v", err)
	}
	joined := strings.Join(snapshot.Recommendations, "\n")
	if !strings.Contains(joined, "splurge") && !strings.Contains(joined, "nearing") {
		t.Errorf("template strategy should include the budget-limit line, got %v", snapshot.Recommendations)
	}
}

func TestCancelSession_RemovesPlan(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := svc.CancelSession(ctx, session.ID); err != nil {
		t.Fatalf("CancelSession failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, session.ID); err == nil {
		t.Error("session should be gone after cancel")
	}
	if err := svc.CancelSession(ctx, session.ID); err == nil {
		t.Error("cancelling twice should report not found")
	}
}
