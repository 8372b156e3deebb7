package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/checkout/internal/widget/registry"
	"github.com/aussiebroadwan/checkout/internal/widget/store"
	"github.com/aussiebroadwan/checkout/pkg/httpx"
	"github.com/aussiebroadwan/checkout/pkg/widgetsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	widgetsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, widgetsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe: the database answers a ping (when one is configured) and the client registry holds at least one client.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	widgetsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	widgetsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	reg *registry.Snapshot,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &widgetsdk.HealthChecks{
			Database: "ok",
			Registry: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		switch {
		case st == nil:
			checks.Database = "disabled"
		default:
			if err := st.Ping(r.Context()); err != nil {
				checks.Database = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		if reg.Len() == 0 {
			checks.Registry = "error: no clients registered"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, widgetsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
