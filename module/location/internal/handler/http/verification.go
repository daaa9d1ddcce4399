package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type verificationService interface {
	Verify(ctx context.Context, req *domain.VerificationRequest) (*domain.VerificationResult, error)
	VerifyHistory(ctx context.Context, req *domain.HistoryVerificationRequest) (*domain.VerificationResult, error)
	Get(ctx context.Context, id string) (*domain.VerificationResult, error)
	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.VerificationResult, error)
}

type patternService interface {
	Analyze(ctx context.Context, req *domain.VerificationRequest) (*domain.PatternAnalysis, error)
}

type metricsResponse struct {
	TotalPings      int     `json:"total_pings"`
	PingsInZone     int     `json:"pings_in_zone"`
	ZonePercentage  float64 `json:"zone_percentage"`
	AvgDistanceKm   float64 `json:"avg_distance_km"`
	MinDistanceKm   float64 `json:"min_distance_km"`
	MaxDistanceKm   float64 `json:"max_distance_km"`
	TotalMovementKm float64 `json:"total_movement_km"`
	AvgMovementKm   float64 `json:"avg_movement_km"`
	UniqueLocations int     `json:"unique_locations"`
	AvgGPSAccuracyM float64 `json:"avg_gps_accuracy_m"`
}

type verificationResponse struct {
	ID                 string          `json:"id"`
	Verified           bool            `json:"verified"`
	Confidence         int             `json:"confidence"`
	Status             string          `json:"status"`
	Message            string          `json:"message"`
	EmployeeID         int64           `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Metrics            metricsResponse `json:"metrics"`
	RiskFactors        []string        `json:"risk_factors"`
	SpoofingIndicators []string        `json:"spoofing_indicators"`
	AIAnalysis         *string         `json:"ai_analysis"`
	Recommendation     string          `json:"recommendation"`
	CheckedAt          int64           `json:"checked_at"`
}

type historyVerifyRequest struct {
	EmployeeName string `json:"employee_name"`
	domain.Office
	Start int64 `json:"start" binding:"required"`
	End   int64 `json:"end" binding:"required"`
}

type VerificationHandler struct {
	verificationSvc verificationService
	patternSvc      patternService
}

func NewVerificationHandler(verificationSvc verificationService, patternSvc patternService) *VerificationHandler {
	return &VerificationHandler{verificationSvc: verificationSvc, patternSvc: patternSvc}
}

// Register mounts the routes. writeMiddleware only guards the POST routes,
// which do the scoring work.
func (h *VerificationHandler) Register(r *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeMiddleware...), handler)
	}

	r.POST("/location/verify", write(h.Verify)...)
	r.POST("/location/analyze-pattern", write(h.AnalyzePattern)...)
	r.POST("/employees/:employee_id/location/verify", write(h.VerifyHistory)...)
	r.GET("/employees/:employee_id/verifications", h.ListByEmployee)
	r.GET("/verifications/:id", h.Get)
}

func (h *VerificationHandler) Verify(c *gin.Context) {
	var req domain.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.verificationSvc.Verify(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "failed to verify location")
		return
	}

	c.JSON(http.StatusOK, toVerificationResponse(result))
}

func (h *VerificationHandler) VerifyHistory(c *gin.Context) {
	employeeID, ok := employeeIDParam(c)
	if !ok {
		return
	}

	var body historyVerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.verificationSvc.VerifyHistory(c.Request.Context(), &domain.HistoryVerificationRequest{
		EmployeeID:   employeeID,
		EmployeeName: body.EmployeeName,
		Office:       body.Office,
		Start:        time.Unix(body.Start, 0),
		End:          time.Unix(body.End, 0),
	})
	if err != nil {
		writeError(c, err, "failed to verify location")
		return
	}

	c.JSON(http.StatusOK, toVerificationResponse(result))
}

func (h *VerificationHandler) AnalyzePattern(c *gin.Context) {
	var req domain.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	analysis, err := h.patternSvc.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "failed to analyze location pattern")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "completed",
		"analysis": analysis,
	})
}

func (h *VerificationHandler) ListByEmployee(c *gin.Context) {
	employeeID, ok := employeeIDParam(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	results, err := h.verificationSvc.ListByEmployee(c.Request.Context(), employeeID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch verifications"})
		return
	}

	resp := make([]verificationResponse, len(results))
	for i := range results {
		resp[i] = toVerificationResponse(&results[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Get(c *gin.Context) {
	result, err := h.verificationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch verification")
		return
	}

	c.JSON(http.StatusOK, toVerificationResponse(result))
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func employeeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id"})
		return 0, false
	}
	return id, true
}

func toVerificationResponse(r *domain.VerificationResult) verificationResponse {
	m := r.Metrics
	resp := verificationResponse{
		ID:           r.ID,
		Verified:     r.Verified,
		Confidence:   r.Confidence,
		Status:       string(r.Status),
		Message:      r.Message,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Metrics: metricsResponse{
			TotalPings:      m.TotalPings,
			PingsInZone:     m.PingsInZone,
			ZonePercentage:  round(m.ZonePercentage, 1),
			AvgDistanceKm:   round(m.AvgDistanceKm, 3),
			MinDistanceKm:   round(m.MinDistanceKm, 3),
			MaxDistanceKm:   round(m.MaxDistanceKm, 3),
			TotalMovementKm: round(m.TotalMovementKm, 3),
			AvgMovementKm:   round(m.AvgMovementKm, 3),
			UniqueLocations: m.UniqueLocations,
			AvgGPSAccuracyM: round(m.AvgGPSAccuracyM, 1),
		},
		RiskFactors:        r.RiskFactors,
		SpoofingIndicators: r.SpoofingIndicators,
		Recommendation:     r.Recommendation,
		CheckedAt:          r.CheckedAt.Unix(),
	}
	if r.AIAnalysis != "" {
		resp.AIAnalysis = &r.AIAnalysis
	}
	return resp
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
