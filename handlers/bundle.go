package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers wired in main.
type HandlerBundle struct {
	// Plan session endpoints.
	CreatePlan      gin.HandlerFunc
	GetPlan         gin.HandlerFunc
	PostMessage     gin.HandlerFunc
	AddSelection    gin.HandlerFunc
	RemoveSelection gin.HandlerFunc
	SetPriorities   gin.HandlerFunc
	GetBudget       gin.HandlerFunc
	CancelPlan      gin.HandlerFunc
}
