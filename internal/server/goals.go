package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goaldomain "github.com/vendaflow/vendaflow/internal/goal/domain"
)

func (s *Server) ListWeeklyGoals(c *gin.Context) {
	ano, err := parseOptionalInt(c.Query("ano"))
	if err != nil {
		AbortWithError(c, newValidationError("ano", "invalid_int", "invalid ano"))
		return
	}
	semana, err := parseOptionalInt(c.Query("semana"))
	if err != nil {
		AbortWithError(c, newValidationError("semana", "invalid_int", "invalid semana"))
		return
	}

	resp, err := s.goalSvc.ListWeekly(c.Request.Context(), ano, semana)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertWeeklyGoal(c *gin.Context) {
	var req goaldomain.UpsertWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.goalSvc.UpsertWeekly(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertMonthlyGoal(c *gin.Context) {
	var req goaldomain.UpsertMonthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.goalSvc.UpsertMonthly(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
