package handlers

import (
	"net/http"
	"time"

	"plannerly/config"
	"plannerly/models"
	"plannerly/services/plan"
	"plannerly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler exposes plan sessions over HTTP.
type PlanHandler struct {
	Svc    plan.PlanService
	Logger *zap.Logger
}

func NewPlanHandler(svc plan.PlanService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{Svc: svc, Logger: logger}
}

// CreatePlan starts a new plan session and returns its ID, a session token
// and the opening prompt.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var input struct {
		DeviceID string `json:"deviceId"`
	}
	// Device ID is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&input)

	session, greeting, err := h.Svc.CreateSession(c.Request.Context(), input.DeviceID)
	if err != nil {
		h.Logger.Error("failed to create plan session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create plan", err.Error())
		return
	}

	ttl := time.Duration(config.AppConfig.SessionTokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	token, err := utils.GenerateSessionToken(session.ID, input.DeviceID, ttl)
	if err != nil {
		h.Logger.Error("failed to issue session token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create plan", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"planId": session.ID,
		"token":  token,
		"prompt": greeting,
		"state":  session.State,
	})
}

// GetPlan returns the full plan session.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	session, err := h.Svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// PostMessage records an intake answer and returns the next prompt.
func (h *PlanHandler) PostMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	session, prompt, err := h.Svc.AdvanceConversation(c.Request.Context(), c.Param("id"), input.Text)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":  prompt,
		"state":   session.State,
		"profile": session.Profile,
	})
}

// AddSelection adds a vendor selection to the plan. Price is optional and
// means "not yet priced" when omitted.
func (h *PlanHandler) AddSelection(c *gin.Context) {
	var input models.VendorSelection
	if err := c.ShouldBindJSON(&input); err != nil || input.Category == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid selection", "category is required")
		return
	}

	session, err := h.Svc.AddSelection(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selections": session.Selections,
		"snapshot":   session.Snapshot,
	})
}

// RemoveSelection drops every selection in the given category.
func (h *PlanHandler) RemoveSelection(c *gin.Context) {
	session, err := h.Svc.RemoveCategory(c.Request.Context(), c.Param("id"), c.Param("category"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selections": session.Selections,
		"snapshot":   session.Snapshot,
	})
}

// SetPriorities replaces the per-category priority weights.
func (h *PlanHandler) SetPriorities(c *gin.Context) {
	var input struct {
		Priorities map[string]float64 `json:"priorities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	session, err := h.Svc.SetPriorities(c.Request.Context(), c.Param("id"), input.Priorities)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"priorities": session.Priorities,
		"snapshot":   session.Snapshot,
	})
}

// GetBudget returns the current budget snapshot. ?strategy=priority switches
// the recommendations to the priority-weight advisor.
func (h *PlanHandler) GetBudget(c *gin.Context) {
	snapshot, err := h.Svc.BudgetSnapshot(c.Request.Context(), c.Param("id"), c.Query("strategy"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// CancelPlan deletes the plan session.
func (h *PlanHandler) CancelPlan(c *gin.Context) {
	if err := h.Svc.CancelSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Plan not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
