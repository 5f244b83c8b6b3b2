// Package data provides thread-safe storage for the vet reports service.
// The DataContainer holds parsed bundles and generated report metadata
// behind atomic values so regeneration swaps in new data with zero
// downtime for readers.
package data

import (
	"sync/atomic"
	"time"

	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all the data with atomic pointers for zero-downtime updates
type DataContainer struct {
	bundles         atomic.Value // []entities.Bundle
	appointmentsMap atomic.Value // map[string]entities.Appointment
	reports         atomic.Value // []interfaces.ReportMeta
	reportsMap      atomic.Value // map[string]interfaces.ReportMeta
	lastGenerated   atomic.Value // time.Time
	generating      atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.bundles.Store(make([]entities.Bundle, 0))
	dc.appointmentsMap.Store(make(map[string]entities.Appointment))
	dc.reports.Store(make([]interfaces.ReportMeta, 0))
	dc.reportsMap.Store(make(map[string]interfaces.ReportMeta))
	dc.lastGenerated.Store(time.Time{})
	dc.serverStartTime.Store(time.Now())
	return dc
}

// Thread-safe getters with type check

// GetBundles returns the parsed bundles
func (dc *DataContainer) GetBundles() []entities.Bundle {
	if v := dc.bundles.Load(); v != nil {
		if bundles, ok := v.([]entities.Bundle); ok {
			return bundles
		}
	}

	logging.Warn("Bundles list is empty or invalid")
	return []entities.Bundle{}
}

// GetAppointmentsMap returns the appointment map for O(1) lookups
func (dc *DataContainer) GetAppointmentsMap() map[string]entities.Appointment {
	if v := dc.appointmentsMap.Load(); v != nil {
		if appointments, ok := v.(map[string]entities.Appointment); ok {
			return appointments
		}
	}

	logging.Warn("AppointmentsMap is empty or invalid")
	return make(map[string]entities.Appointment)
}

// GetReports returns generated report metadata in generation order
func (dc *DataContainer) GetReports() []interfaces.ReportMeta {
	if v := dc.reports.Load(); v != nil {
		if reports, ok := v.([]interfaces.ReportMeta); ok {
			return reports
		}
	}

	logging.Warn("Reports list is empty or invalid")
	return []interfaces.ReportMeta{}
}

// GetReportsMap returns the report map keyed by report name
func (dc *DataContainer) GetReportsMap() map[string]interfaces.ReportMeta {
	if v := dc.reportsMap.Load(); v != nil {
		if reportsMap, ok := v.(map[string]interfaces.ReportMeta); ok {
			return reportsMap
		}
	}

	logging.Warn("ReportsMap is empty or invalid")
	return make(map[string]interfaces.ReportMeta)
}

// GetLastGenerated returns the time of the last successful generation
func (dc *DataContainer) GetLastGenerated() time.Time {
	if v := dc.lastGenerated.Load(); v != nil {
		if lastGenerated, ok := v.(time.Time); ok {
			return lastGenerated
		}
	}

	logging.Warn("Could not get the last generated value")
	return time.Time{}
}

// IsGenerating reports whether a generation run is in progress
func (dc *DataContainer) IsGenerating() bool {
	return dc.generating.Load()
}

// GetServerStartTime returns the time the service started
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if start, ok := v.(time.Time); ok {
			return start
		}
	}
	return time.Time{}
}

// UpdateData atomically swaps in a freshly generated data set
func (dc *DataContainer) UpdateData(bundles []entities.Bundle, appointmentsMap map[string]entities.Appointment,
	reports []interfaces.ReportMeta, reportsMap map[string]interfaces.ReportMeta) {
	dc.bundles.Store(bundles)
	dc.appointmentsMap.Store(appointmentsMap)
	dc.reports.Store(reports)
	dc.reportsMap.Store(reportsMap)
	dc.lastGenerated.Store(time.Now())
}

// BeginGeneration marks a generation run as started. It returns false when
// another run is already in progress.
func (dc *DataContainer) BeginGeneration() bool {
	return dc.generating.CompareAndSwap(false, true)
}

// EndGeneration marks the current generation run as finished
func (dc *DataContainer) EndGeneration() {
	dc.generating.Store(false)
}
