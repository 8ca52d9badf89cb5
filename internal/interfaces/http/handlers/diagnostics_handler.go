package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auto-diag.backend/internal/domain/entities"
	"auto-diag.backend/internal/interfaces/http/middleware"
	"auto-diag.backend/internal/usecases"
)

// relatedLinks is the fixed related-resource block every public endpoint
// response carries
var relatedLinks = gin.H{
	"diagnose":             "/api/v1/diagnose",
	"repair_cost":          "/api/v1/repair-cost",
	"valuation":            "/api/v1/valuation",
	"maintenance_schedule": "/api/v1/maintenance-schedule",
	"providers":            "/api/v1/providers",
}

// DiagnosticsHandler serves the five public endpoints
type DiagnosticsHandler struct {
	diagnostics *usecases.DiagnosticsUsecase
}

// NewDiagnosticsHandler creates a diagnostics handler
func NewDiagnosticsHandler(diagnostics *usecases.DiagnosticsUsecase) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnostics: diagnostics}
}

// Diagnose handles POST /api/v1/diagnose
func (h *DiagnosticsHandler) Diagnose(c *gin.Context) {
	var input entities.DiagnoseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.diagnostics.Diagnose(&input)

	c.Set(middleware.ContextKeyUsageVehicle, input.Vehicle.String())
	if len(result.ProbableCauses) > 0 {
		c.Set(middleware.ContextKeyUsageDiagnosis, result.ProbableCauses[0].Title)
	}

	c.JSON(http.StatusOK, gin.H{
		"diagnosis": result,
		"related":   relatedLinks,
	})
}

// RepairCost handles POST /api/v1/repair-cost
func (h *DiagnosticsHandler) RepairCost(c *gin.Context) {
	var input entities.RepairCostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate := h.diagnostics.EstimateRepairCost(&input)

	c.Set(middleware.ContextKeyUsageVehicle, input.Vehicle.String())
	c.Set(middleware.ContextKeyUsageDiagnosis, input.Issue)
	c.Set(middleware.ContextKeyUsageEstimate, (estimate.TotalLow+estimate.TotalHi)/2)

	c.JSON(http.StatusOK, gin.H{
		"estimate": estimate,
		"related":  relatedLinks,
	})
}

// Valuation handles POST /api/v1/valuation
func (h *DiagnosticsHandler) Valuation(c *gin.Context) {
	var input entities.ValuationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.diagnostics.Valuate(&input)

	c.Set(middleware.ContextKeyUsageVehicle, input.Vehicle.String())
	c.Set(middleware.ContextKeyUsageEstimate, result.EstimatedUSD)

	c.JSON(http.StatusOK, gin.H{
		"valuation": result,
		"related":   relatedLinks,
	})
}

// MaintenanceSchedule handles POST /api/v1/maintenance-schedule
func (h *DiagnosticsHandler) MaintenanceSchedule(c *gin.Context) {
	var input entities.MaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := h.diagnostics.MaintenanceSchedule(&input)

	c.Set(middleware.ContextKeyUsageVehicle, input.Vehicle.String())

	c.JSON(http.StatusOK, gin.H{
		"schedule": items,
		"related":  relatedLinks,
	})
}

// Providers handles GET /api/v1/providers
func (h *DiagnosticsHandler) Providers(c *gin.Context) {
	zip := c.Query("zip")
	if zip == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zip query parameter is required"})
		return
	}

	providers := h.diagnostics.Providers(zip, c.Query("service"))

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"related":   relatedLinks,
	})
}
