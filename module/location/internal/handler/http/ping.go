package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type pingService interface {
	GetLatest(ctx context.Context, employeeID int64) (*domain.EmployeePing, error)
	GetHistory(ctx context.Context, query *domain.PingQuery) ([]domain.EmployeePing, error)
}

type pingResponse struct {
	EmployeeID int64    `json:"employee_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

type PingHandler struct {
	pingSvc pingService
}

func NewPingHandler(pingSvc pingService) *PingHandler {
	return &PingHandler{pingSvc: pingSvc}
}

func (h *PingHandler) Register(r *gin.RouterGroup) {
	r.GET("/employees/:employee_id/location", h.GetLatestLocation)
	r.GET("/employees/:employee_id/history", h.GetHistory)
}

func (h *PingHandler) GetLatestLocation(c *gin.Context) {
	employeeID, ok := employeeIDParam(c)
	if !ok {
		return
	}

	ep, err := h.pingSvc.GetLatest(c.Request.Context(), employeeID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location for employee"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}

	c.JSON(http.StatusOK, toPingResponse(ep))
}

func (h *PingHandler) GetHistory(c *gin.Context) {
	employeeID, ok := employeeIDParam(c)
	if !ok {
		return
	}

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	history, err := h.pingSvc.GetHistory(c.Request.Context(), &domain.PingQuery{
		EmployeeID: employeeID,
		Start:      time.Unix(start, 0),
		End:        time.Unix(end, 0),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]pingResponse, len(history))
	for i := range history {
		results[i] = toPingResponse(&history[i])
	}
	c.JSON(http.StatusOK, results)
}

func toPingResponse(ep *domain.EmployeePing) pingResponse {
	return pingResponse{
		EmployeeID: ep.EmployeeID,
		Latitude:   ep.Ping.Lat,
		Longitude:  ep.Ping.Lng,
		Accuracy:   ep.Ping.Accuracy,
		Timestamp:  ep.Ping.Timestamp.Unix(),
	}
}
