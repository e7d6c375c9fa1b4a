package stats

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/machine-events/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all stats API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/stats", s.HandleMachineStats)
	r.GET("/stats/top-defect-lines", s.HandleTopDefectLines)
}

// HandleMachineStats handles GET /stats?machineId=&start=&end=
func (s *Service) HandleMachineStats(c *gin.Context) {
	var query struct {
		MachineID string    `form:"machineId" binding:"required"`
		Start     time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		End       time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		writeInvalidQuery(c, err)
		return
	}

	resp, err := s.MachineStats(c.Request.Context(), query.MachineID, query.Start, query.End)
	if err != nil {
		writeQueryError(c, err, "Failed to compute machine stats")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleTopDefectLines handles GET /stats/top-defect-lines?factoryId=&from=&to=&limit=
func (s *Service) HandleTopDefectLines(c *gin.Context) {
	var query struct {
		FactoryID string    `form:"factoryId" binding:"required"`
		From      time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		To        time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		Limit     *int      `form:"limit"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		writeInvalidQuery(c, err)
		return
	}

	limit := s.DefaultLimit()
	if query.Limit != nil {
		limit = *query.Limit
	}

	rows, err := s.TopDefectLines(c.Request.Context(), query.FactoryID, query.From, query.To, limit)
	if err != nil {
		writeQueryError(c, err, "Failed to rank defect lines")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func writeInvalidQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   "Invalid query parameters",
		Details:   err.Error(),
	})
}

func writeQueryError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrInvalidQuery) {
		writeInvalidQuery(c, err)
		return
	}

	slog.Error("[Stats] Query failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
		ErrorType: httperr.HttpStoreUnavailableError,
		Message:   message,
		Details:   err.Error(),
	})
}
