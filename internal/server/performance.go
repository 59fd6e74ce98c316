package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	perfdomain "github.com/vendaflow/vendaflow/internal/performance/domain"
)

func (s *Server) GetPerformanceStats(c *gin.Context) {
	resp, err := s.performanceSvc.Stats(c.Request.Context(), perfdomain.StatsRequest{
		Data:   c.Query("data"),
		Escopo: c.Query("escopo"),
		Papel:  c.Query("papel"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
