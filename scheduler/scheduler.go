// Package scheduler drives automated report regeneration for the vet
// reports service. It runs the initial generation, schedules periodic
// regeneration with gocron, and monitors data staleness, coordinating with
// the data container through dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/metrics"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles report regeneration and staleness monitoring
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	generator interfaces.Generator
	validator interfaces.DataValidator
	inputDir  string
	interval  time.Duration
	scheduler *gocron.Scheduler
	stopMon   chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser,
	generator interfaces.Generator, validator interfaces.DataValidator,
	inputDir string, intervalMinutes int) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		generator: generator,
		validator: validator,
		inputDir:  inputDir,
		interval:  time.Duration(intervalMinutes) * time.Minute,
		scheduler: gocron.NewScheduler(time.Local),
		stopMon:   make(chan struct{}),
	}
}

// Start runs the initial generation and schedules periodic regeneration
func (s *Scheduler) Start() error {
	// Initial generation
	if err := s.regenerate(); err != nil {
		logging.Error("Failed to perform initial report generation", "error", err)
		return fmt.Errorf("initial generation failed: %w", err)
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		if err := s.regenerate(); err != nil {
			logging.Error("Failed to regenerate reports", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule regeneration", "error", err)
		return fmt.Errorf("failed to schedule regeneration: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopMon)
}

// NextRun returns the next scheduled regeneration time
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// regenerate performs a complete parse-and-generate run
func (s *Scheduler) regenerate() error {
	// Prevent concurrent runs
	if !s.dataStore.BeginGeneration() {
		logging.Info("Generation already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndGeneration()

	logging.Info("Starting report generation", "input_dir", s.inputDir)
	start := time.Now()

	// Parse and generate into fresh values, leaving current data untouched
	bundles, err := s.parser.ParseAllAppointments(s.inputDir)
	if err != nil {
		return fmt.Errorf("failed to parse appointments: %w", err)
	}

	// Invalid appointments inside a bundle are logged by the validator and
	// kept; a bundle with nothing to report is dropped from the run.
	valid := make([]entities.Bundle, 0, len(bundles))
	for i := range bundles {
		if err := s.validator.ValidateBundle(&bundles[i]); err != nil {
			logging.Warn("Skipping invalid bundle", "bundle", bundles[i].SourceFile, "error", err)
			continue
		}
		valid = append(valid, bundles[i])
	}
	bundles = valid

	appointmentsMap := s.parser.BuildAppointmentIndex(bundles)

	reports, reportsMap, err := s.generator.GenerateAll(bundles)
	if err != nil {
		return fmt.Errorf("failed to generate reports: %w", err)
	}

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(bundles, appointmentsMap, reports, reportsMap)

	elapsed := time.Since(start)
	metrics.ReportGenerationDuration.Observe(elapsed.Seconds())
	logging.Info("Report generation completed",
		"duration", elapsed.String(),
		"bundle_count", len(bundles),
		"report_count", len(reports))

	return nil
}

// startStalenessMonitoring warns when the last successful generation is
// older than twice the schedule interval.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopMon:
				return
			case <-ticker.C:
				last := s.dataStore.GetLastGenerated()
				if time.Since(last) > 2*s.interval {
					logging.Warn("Reports have not been regenerated on schedule",
						"last_generated", last, "interval", s.interval.String())
				}
			}
		}
	}()
}
