// Package validation provides data validation for the vet reports service.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Pre-compiled regex patterns, compiled once at package initialization.
var (
	// Report names come from file stems: letters, digits and safe punctuation.
	reportNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-]*$`)

	// Input validation: alphanumeric + accents + safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'àâäéèêëïîôöùûüÿç]+$`)

	// Dangerous substrings checked before the character whitelist;
	// strings.Contains is much cheaper than regex for these.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import",
		"' or ", "\" or ", "union select", "drop table", "delete from",
		"--", "/*", "*/", "exec(", "execute(",
		"../", "..\\", "%2e%2e", "file://",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateAppointment checks if an appointment entity is valid
func (v *DataValidatorImpl) ValidateAppointment(a *entities.Appointment) error {
	if a == nil {
		return fmt.Errorf("appointment is nil")
	}

	if a.AppointmentID == "" {
		return fmt.Errorf("missing appointment ID")
	}

	if a.PetName == "" && a.ClientName() == "" {
		return fmt.Errorf("appointment %s has neither pet nor client name", a.AppointmentID)
	}

	for i := range a.Scribes {
		if a.Scribes[i].ScribeTitle == "" && a.Scribes[i].TranscriptionText == "" {
			return fmt.Errorf("appointment %s scribe %d is empty", a.AppointmentID, i)
		}
	}

	return nil
}

// ValidateBundle checks a whole parsed bundle. Individual invalid
// appointments are logged but only an empty bundle is an error: a partially
// valid export still yields a useful report.
func (v *DataValidatorImpl) ValidateBundle(b *entities.Bundle) error {
	if b == nil {
		return fmt.Errorf("bundle is nil")
	}
	if b.Stem == "" {
		return fmt.Errorf("bundle from %s has no stem", b.SourceFile)
	}
	if len(b.Payload.Data) == 0 {
		return fmt.Errorf("bundle %s contains no appointments", b.SourceFile)
	}

	for i := range b.Payload.Data {
		if err := v.ValidateAppointment(&b.Payload.Data[i]); err != nil {
			logging.Warn("Invalid appointment in bundle", "bundle", b.SourceFile, "error", err)
		}
	}

	return nil
}

// ValidateInput validates user input strings from the HTTP layer
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if input == "" {
		return fmt.Errorf("input cannot be empty")
	}
	if len(input) > 256 {
		return fmt.Errorf("input too long: %d characters", len(input))
	}

	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains a forbidden pattern")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}

// ValidateReportName validates a report name URL parameter and returns the
// cleaned name. Report names map to file paths, so anything outside the
// stem alphabet is rejected outright.
func (v *DataValidatorImpl) ValidateReportName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return "", fmt.Errorf("report name cannot be empty")
	}
	if len(name) > 128 {
		return "", fmt.Errorf("report name too long: %d characters", len(name))
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("report name contains a path traversal sequence")
	}
	if !reportNameRegex.MatchString(name) {
		return "", fmt.Errorf("report name contains invalid characters")
	}
	return name, nil
}
