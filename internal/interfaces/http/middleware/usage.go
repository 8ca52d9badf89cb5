package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"

	"auto-diag.backend/internal/domain/entities"
	"auto-diag.backend/internal/usecases"
)

// Context keys handlers use to attach business context to the usage record
const (
	ContextKeyUsageVehicle   = "usageVehicle"   // string
	ContextKeyUsageDiagnosis = "usageDiagnosis" // string
	ContextKeyUsageEstimate  = "usageEstimate"  // float64
)

// RecordUsage writes one analytics row per admitted request after the handler
// returns, whatever the business outcome was. The write is fire-and-forget;
// it never delays or fails the response.
func RecordUsage(recorder *usecases.UsageRecorderUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		key, ok := APIKeyFromContext(c)
		if !ok {
			return
		}

		entry := &entities.RequestLog{
			Endpoint:    c.FullPath(),
			KeyHash:     key.KeyHash,
			RequestedAt: start.UTC(),
			StatusCode:  c.Writer.Status(),
			LatencyMs:   time.Since(start).Milliseconds(),
		}
		if vehicle, ok := c.Get(ContextKeyUsageVehicle); ok {
			if s, ok := vehicle.(string); ok && s != "" {
				entry.Vehicle = null.StringFrom(s)
			}
		}
		if diagnosis, ok := c.Get(ContextKeyUsageDiagnosis); ok {
			if s, ok := diagnosis.(string); ok && s != "" {
				entry.Diagnosis = null.StringFrom(s)
			}
		}
		if estimate, ok := c.Get(ContextKeyUsageEstimate); ok {
			if f, ok := estimate.(float64); ok {
				entry.EstimateUSD = null.Float64From(f)
			}
		}

		recorder.Record(entry)
	}
}
