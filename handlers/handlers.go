// Package handlers provides HTTP request handlers for the vet reports
// service: report index and retrieval, appointment lookup, health checks,
// and response formatting with input validation.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vetscribe/vetreports-api/data"
	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/logging"
)

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// ServeReportIndex returns metadata for every generated report
func ServeReportIndex(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports := dataContainer.GetReports()
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"reports":       reports,
			"count":         len(reports),
			"lastGenerated": dataContainer.GetLastGenerated(),
		})
	}
}

// ServeReport serves one generated HTML report by name
func ServeReport(dataContainer *data.DataContainer, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validator.ValidateReportName(chi.URLParam(r, "name"))
		if err != nil {
			logging.Warn("Unusual report name requested", "name", chi.URLParam(r, "name"), "error", err)
			RespondWithError(w, http.StatusBadRequest, "Invalid report name")
			return
		}

		meta, ok := dataContainer.GetReportsMap()[name]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Last-Modified", meta.GeneratedAt.UTC().Format(http.TimeFormat))
		http.ServeFile(w, r, meta.Path)
	}
}

// FindAppointment returns one appointment payload by its ID
func FindAppointment(dataContainer *data.DataContainer, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validator.ValidateInput(id); err != nil {
			logging.Warn("Unusual appointment id requested", "error", err)
			RespondWithError(w, http.StatusBadRequest, "Invalid appointment id")
			return
		}

		appointment, ok := dataContainer.GetAppointmentsMap()[id]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "Appointment not found")
			return
		}

		RespondWithJSON(w, http.StatusOK, appointment)
	}
}

// HealthCheck reports service status. nextRun comes from the scheduler so
// the reported next generation matches the actual schedule; when it yields
// nothing the handler falls back to lastGenerated plus the interval.
func HealthCheck(dataContainer *data.DataContainer, generateInterval time.Duration, nextRun func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastGenerated := dataContainer.GetLastGenerated()
		uptime := time.Since(dataContainer.GetServerStartTime())

		status := "healthy"
		httpStatus := http.StatusOK
		if lastGenerated.IsZero() {
			status = "initializing"
			httpStatus = http.StatusServiceUnavailable
		} else if time.Since(lastGenerated) > 2*generateInterval {
			status = "stale"
		}

		appointmentCount := 0
		for _, bundle := range dataContainer.GetBundles() {
			appointmentCount += len(bundle.Payload.Data)
		}

		nextGeneration := lastGenerated.Add(generateInterval)
		if nextRun != nil {
			if next := nextRun(); !next.IsZero() {
				nextGeneration = next
			}
		}

		RespondWithJSON(w, httpStatus, map[string]any{
			"status":            status,
			"bundle_count":      len(dataContainer.GetBundles()),
			"appointment_count": appointmentCount,
			"report_count":      len(dataContainer.GetReports()),
			"last_generated":    lastGenerated,
			"next_generation":   nextGeneration,
			"generating":        dataContainer.IsGenerating(),
			"uptime":            formatUptimeHuman(uptime),
		})
	}
}
