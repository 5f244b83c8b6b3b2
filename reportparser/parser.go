package reportparser

import (
	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Compile-time check to ensure AppointmentsParser implements Parser interface
var _ interfaces.Parser = (*AppointmentsParser)(nil)

// AppointmentsParser implements the Parser interface
type AppointmentsParser struct{}

// NewAppointmentsParser creates a new AppointmentsParser instance
func NewAppointmentsParser() *AppointmentsParser {
	return &AppointmentsParser{}
}

// ParseAllAppointments implements the Parser interface
func (p *AppointmentsParser) ParseAllAppointments(inputDir string) ([]entities.Bundle, error) {
	return ParseAllAppointments(inputDir)
}

// BuildAppointmentIndex implements the Parser interface
func (p *AppointmentsParser) BuildAppointmentIndex(bundles []entities.Bundle) map[string]entities.Appointment {
	return BuildAppointmentIndex(bundles)
}
