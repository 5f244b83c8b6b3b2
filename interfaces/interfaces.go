// Package interfaces defines core abstractions for the vet reports service
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// ReportMeta describes one generated HTML report.
type ReportMeta struct {
	Name        string    `json:"name"`       // report stem, keys the index
	SourceFile  string    `json:"sourceFile"` // export file the report came from
	Path        string    `json:"path"`       // path of the written HTML file
	Size        int64     `json:"size"`       // bytes written
	GeneratedAt time.Time `json:"generatedAt"`
}

// DataStore defines the contract for data storage operations.
// It provides thread-safe access to parsed bundles and generated report
// metadata with atomic operations for zero-downtime updates.
type DataStore interface {
	GetBundles() []entities.Bundle
	GetAppointmentsMap() map[string]entities.Appointment
	GetReports() []ReportMeta
	GetReportsMap() map[string]ReportMeta
	GetLastGenerated() time.Time
	IsGenerating() bool
	GetServerStartTime() time.Time

	UpdateData(bundles []entities.Bundle, appointmentsMap map[string]entities.Appointment,
		reports []ReportMeta, reportsMap map[string]ReportMeta)
	BeginGeneration() bool
	EndGeneration()
}

// Parser defines the contract for reading appointment export files and
// turning them into bundles.
type Parser interface {
	// ParseAllAppointments scans the input directory and parses every
	// export file it can.
	ParseAllAppointments(inputDir string) ([]entities.Bundle, error)

	// BuildAppointmentIndex builds the appointment-by-ID lookup map.
	BuildAppointmentIndex(bundles []entities.Bundle) map[string]entities.Appointment
}

// Renderer defines the contract for turning a parsed bundle into a
// complete HTML document.
type Renderer interface {
	RenderBundle(bundle *entities.Bundle) string
}

// Generator defines the contract for rendering bundles and writing the
// resulting HTML files to the output directory.
type Generator interface {
	GenerateAll(bundles []entities.Bundle) ([]ReportMeta, map[string]ReportMeta, error)
}

// Scheduler defines the contract for job scheduling and staleness
// monitoring. It manages automated report regeneration.
type Scheduler interface {
	Start() error
	Stop()

	// NextRun reports when the next regeneration is scheduled.
	NextRun() time.Time
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateAppointment checks if an appointment entity is valid
	ValidateAppointment(a *entities.Appointment) error

	// ValidateBundle checks a whole parsed bundle
	ValidateBundle(b *entities.Bundle) error

	// ValidateInput validates user input strings from the HTTP layer
	ValidateInput(input string) error

	// ValidateReportName validates a report name URL parameter
	ValidateReportName(input string) (string, error)
}
