package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	"github.com/vendaflow/vendaflow/pkg/db/pagination"
)

func (s *Server) ListAgendamentos(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_time", "invalid from date"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_time", "invalid to date"))
		return
	}
	vendedorID, err := parseOptionalSnowflakeID(c.Query("vendedor_id"))
	if err != nil {
		AbortWithError(c, newValidationError("vendedor_id", "invalid_id", "invalid vendedor_id"))
		return
	}
	sdrID, err := parseOptionalSnowflakeID(c.Query("sdr_id"))
	if err != nil {
		AbortWithError(c, newValidationError("sdr_id", "invalid_id", "invalid sdr_id"))
		return
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_int", "invalid limit"))
		return
	}
	offset, err := parseOptionalInt(c.Query("offset"))
	if err != nil {
		AbortWithError(c, newValidationError("offset", "invalid_int", "invalid offset"))
		return
	}

	page := pagination.Normalize(limit, offset)
	resp, err := s.meetingSvc.List(c.Request.Context(), meetingdomain.ListFilter{
		Status:     splitCommaList(c.Query("status")),
		From:       from,
		To:         to,
		VendedorID: vendedorID,
		SDRID:      sdrID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAgendamento(c *gin.Context) {
	resp, err := s.meetingSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateAgendamento(c *gin.Context) {
	var req meetingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meetingSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) RecordAgendamentoResultado(c *gin.Context) {
	var req meetingdomain.OutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meetingSvc.RecordOutcome(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelAgendamento(c *gin.Context) {
	resp, err := s.meetingSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
